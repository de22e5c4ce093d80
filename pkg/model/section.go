package model

import "fmt"

// SectionKey identifies a core section: department, semester and section letter
type SectionKey struct {
	Department string
	Semester   uint64
	Section    string
}

func (key SectionKey) String() string {
	return fmt.Sprintf("%v_S%v_Sec%v", key.Department, key.Semester, key.Section)
}

// ElectiveSectionKey identifies a section synthesized from elective demand
type ElectiveSectionKey struct {
	Elective string
	Number   uint64
}

func (key ElectiveSectionKey) String() string {
	return fmt.Sprintf("Elective_%v_Sec%v", key.Elective, key.Number)
}

// sectionLetters returns "A", "B", ..., continuing with "AA", "AB", ... past "Z"
func sectionLetters(count uint64) []string {
	letters := make([]string, 0, count)
	for i := range count {
		name := ""
		for n := i + 1; n > 0; n = (n - 1) / 26 {
			name = string(rune('A'+(n-1)%26)) + name
		}
		letters = append(letters, name)
	}
	return letters
}
