package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markphelps/optional"
	"go.uber.org/zap"

	"github.com/limaJavier/coursegrid/pkg/csvio"
	"github.com/limaJavier/coursegrid/pkg/export"
	"github.com/limaJavier/coursegrid/pkg/logger"
	"github.com/limaJavier/coursegrid/pkg/model"
	"github.com/limaJavier/coursegrid/pkg/pipeline"
)

const maxInputBytes = 8 << 20

var errBadRequest = errors.New("bad request")

// Handler exposes the timetable generation endpoints.
type Handler struct {
	params  model.Parameters
	store   *pipeline.Store
	metrics *Metrics
	logger  *zap.Logger
}

func NewHandler(params model.Parameters, store *pipeline.Store, metrics *Metrics, logger *zap.Logger) *Handler {
	return &Handler{params: params, store: store, metrics: metrics, logger: logger}
}

// overrides are the per-request parameter changes taken from the query string
type overrides struct {
	seed               optional.Uint64
	strategy           optional.String
	electiveRoomLedger optional.Bool
	simulateDemand     optional.Bool
}

func parseOverrides(c *gin.Context) (overrides, error) {
	var o overrides
	if value, ok := c.GetQuery("seed"); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return overrides{}, fmt.Errorf("%w: invalid seed %q", errBadRequest, value)
		}
		o.seed = optional.NewUint64(seed)
	}
	if value, ok := c.GetQuery("strategy"); ok {
		o.strategy = optional.NewString(strings.ToLower(strings.TrimSpace(value)))
	}
	for name, target := range map[string]*optional.Bool{"roomLedger": &o.electiveRoomLedger, "simulateDemand": &o.simulateDemand} {
		if value, ok := c.GetQuery(name); ok {
			flag, err := strconv.ParseBool(value)
			if err != nil {
				return overrides{}, fmt.Errorf("%w: invalid %v %q", errBadRequest, name, value)
			}
			*target = optional.NewBool(flag)
		}
	}
	return o, nil
}

func (o overrides) apply(params model.Parameters) model.Parameters {
	params.Seed = o.seed.OrElse(params.Seed)
	params.Strategy = model.Strategy(o.strategy.OrElse(string(params.Strategy)))
	params.ElectiveRoomLedger = o.electiveRoomLedger.OrElse(params.ElectiveRoomLedger)
	return params
}

// Index reports the service status and its endpoints
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "coursegrid",
		"endpoints": []string{
			"POST /generate-timetable",
			"POST /generate-electives",
			"GET /timetables/:id",
			"GET /timetables/:id/download?format=csv|pdf",
			"GET /metrics",
		},
	})
}

// GenerateTimetable builds the core timetable, plus the elective one when electives=true, from a JSON input body
func (h *Handler) GenerateTimetable(c *gin.Context) {
	engines := []model.Engine{model.CoreEngine}
	if withElectives, _ := strconv.ParseBool(c.Query("electives")); withElectives {
		engines = append(engines, model.ElectiveEngine)
	}
	h.generate(c, engines, false)
}

// GenerateElectives builds the elective timetable; demand is simulated when the input carries none unless simulateDemand=false
func (h *Handler) GenerateElectives(c *gin.Context) {
	h.generate(c, []model.Engine{model.ElectiveEngine}, true)
}

func (h *Handler) generate(c *gin.Context, engines []model.Engine, simulateDemand bool) {
	o, err := parseOverrides(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	params := o.apply(h.params)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInputBytes))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: cannot read body: %v", errBadRequest, err))
		return
	}
	input, err := model.InputFromJsonBytes(body, params.StudentsPerSection)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	run, err := pipeline.Execute(c.Request.Context(), pipeline.Request{
		Input:          input,
		Parameters:     params,
		Engines:        engines,
		SimulateDemand: o.simulateDemand.OrElse(simulateDemand),
	}, h.logger)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set(logger.RunKey, run.ID)
	h.store.Save(run)
	h.metrics.ObserveRun(run)
	c.JSON(http.StatusCreated, newRunResponse(run, false))
}

// Timetable returns a stored run with every section grid
func (h *Handler) Timetable(c *gin.Context) {
	run, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(logger.RunKey, run.ID)
	c.JSON(http.StatusOK, newRunResponse(run, true))
}

// Download serves the grids of one engine of a stored run as csv or pdf. The engine defaults to the first one of the run
func (h *Handler) Download(c *gin.Context) {
	run, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(logger.RunKey, run.ID)

	result := run.Results[0]
	if engine, ok := c.GetQuery("engine"); ok {
		if result, ok = run.Result(model.Engine(engine)); !ok {
			h.fail(c, fmt.Errorf("%w: run has no %v timetable", errBadRequest, engine))
			return
		}
	}

	name := fmt.Sprintf("%v_%v_timetable", result.Engine, run.ID)
	switch format := c.DefaultQuery("format", "csv"); format {
	case "csv":
		content, err := csvio.TimetableBytes(result.Timetable)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%v.csv", name))
		c.Data(http.StatusOK, "text/csv", content)
	case "pdf":
		content, err := export.NewPDFExporter().RenderTimetable(result.Timetable, string(result.Engine)+" timetable")
		if err != nil {
			h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%v.pdf", name))
		c.Data(http.StatusOK, "application/pdf", content)
	default:
		h.fail(c, fmt.Errorf("%w: unsupported format %q", errBadRequest, format))
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, model.ErrInvalidParameters):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrRunNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
