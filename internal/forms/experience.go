package forms

import (
	"strings"
	"time"

	"github.com/jonathan/resume-wizard/internal/dates"
	"github.com/jonathan/resume-wizard/internal/document"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// MaxSkillsPerRow caps the number of skill tokens a single experience row may
// hold.
const MaxSkillsPerRow = 5

// ExperienceRow is the editing shape for one work experience entry. The form
// renames position to JobTitle and responsibilities to Description, and keeps
// dates as real calendar values until submission.
type ExperienceRow struct {
	JobTitle     string     `json:"jobTitle"`
	Company      string     `json:"company"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Description  string     `json:"description"`
	Skills       []string   `json:"skills"`
	Achievements []string   `json:"achievements"`
}

// ExperienceForm is the work-experience step adapter.
type ExperienceForm struct {
	Rows  []ExperienceRow
	Files []AchievementFile

	// drafts holds per-row skill input text awaiting a commit keystroke.
	drafts map[int]string
}

// NewExperienceForm loads the persisted slice through the date codec and
// seeds a single blank row when the slice is empty, so the form always has at
// least one editable group.
func NewExperienceForm(doc *types.ResumeDocument) *ExperienceForm {
	form := &ExperienceForm{drafts: make(map[int]string)}
	for _, exp := range doc.WorkExperience {
		form.Rows = append(form.Rows, ExperienceRow{
			JobTitle:     exp.Position,
			Company:      exp.Company,
			StartDate:    dates.Parse(exp.StartDate),
			EndDate:      dates.Parse(exp.EndDate),
			Description:  exp.Responsibilities,
			Skills:       append([]string(nil), exp.Skills...),
			Achievements: append([]string(nil), exp.Achievements...),
		})
	}
	if len(form.Rows) == 0 {
		form.Rows = []ExperienceRow{{}}
	}
	return form
}

// AddRow appends a blank experience row.
func (f *ExperienceForm) AddRow() {
	f.Rows = append(f.Rows, ExperienceRow{})
}

// RemoveRow deletes a row by index. Removing the only remaining row is a
// no-op; at least one row is always retained.
func (f *ExperienceForm) RemoveRow(i int) bool {
	if len(f.Rows) <= 1 || i < 0 || i >= len(f.Rows) {
		return false
	}
	f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
	return true
}

// SetSkillDraft records in-progress skill text for a row. The draft map is
// created lazily so forms built as struct literals work too.
func (f *ExperienceForm) SetSkillDraft(row int, text string) {
	if f.drafts == nil {
		f.drafts = make(map[int]string)
	}
	f.drafts[row] = text
}

// CommitSkill turns the row's draft into a skill token on the commit
// keystroke. Blank drafts are rejected, and a row at the cap stays unchanged.
func (f *ExperienceForm) CommitSkill(row int) bool {
	if row < 0 || row >= len(f.Rows) {
		return false
	}
	token := strings.TrimSpace(f.drafts[row])
	if token == "" {
		return false
	}
	if len(f.Rows[row].Skills) >= MaxSkillsPerRow {
		return false
	}
	f.Rows[row].Skills = append(f.Rows[row].Skills, token)
	f.drafts[row] = ""
	return true
}

// RemoveSkill deletes a skill token from a row by index.
func (f *ExperienceForm) RemoveSkill(row, skill int) {
	if row < 0 || row >= len(f.Rows) {
		return
	}
	skills := f.Rows[row].Skills
	if skill < 0 || skill >= len(skills) {
		return
	}
	f.Rows[row].Skills = append(skills[:skill], skills[skill+1:]...)
}

// AttachFiles records uploads for the session and mirrors their names into the
// given row's achievements list.
func (f *ExperienceForm) AttachFiles(row int, files ...AchievementFile) {
	if row < 0 || row >= len(f.Rows) {
		return
	}
	for _, file := range files {
		f.Files = append(f.Files, file)
		f.Rows[row].Achievements = append(f.Rows[row].Achievements, file.Name)
	}
}

// RemoveFile drops an upload and its mirrored name wherever it was attached.
func (f *ExperienceForm) RemoveFile(i int) {
	if i < 0 || i >= len(f.Files) {
		return
	}
	name := f.Files[i].Name
	f.Files = append(f.Files[:i], f.Files[i+1:]...)
	for r := range f.Rows {
		f.Rows[r].Achievements = removeString(f.Rows[r].Achievements, name)
	}
}

// Submit re-encodes every row to canonical form and replaces the document's
// work-experience slice wholesale, then derives the top-level skill list as a
// deduplicated union of all row skills and advances to the education step.
func (f *ExperienceForm) Submit(store *document.Store, nav *wizard.Machine) error {
	items := make([]types.WorkExperienceItem, len(f.Rows))
	for i, row := range f.Rows {
		items[i] = types.WorkExperienceItem{
			Company:          row.Company,
			Position:         row.JobTitle,
			StartDate:        dates.Format(row.StartDate),
			EndDate:          dates.Format(row.EndDate),
			Responsibilities: row.Description,
			Skills:           append([]string(nil), row.Skills...),
			Achievements:     append([]string(nil), row.Achievements...),
		}
	}
	if err := store.ReplaceWorkExperience(items); err != nil {
		return err
	}
	if err := store.SetSkills(f.AggregateSkills()); err != nil {
		return err
	}
	return nav.Advance(wizard.StepEducation)
}

// AggregateSkills flattens all row-level skill lists into a set, preserving
// first-seen order.
func (f *ExperienceForm) AggregateSkills() []string {
	seen := make(map[string]struct{})
	union := []string{}
	for _, row := range f.Rows {
		for _, skill := range row.Skills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			union = append(union, skill)
		}
	}
	return union
}
