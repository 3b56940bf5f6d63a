package types

// SelectedContent lists the profile content chosen for a tailored resume
// render, together with the match outcome the resume renderer displays.
// Current policy includes everything; the matched/missing lists let a
// future policy filter without touching the matcher.
type SelectedContent struct {
	ProjectIDs     []int `json:"project_ids"`
	SkillIDs       []int `json:"skill_ids"`
	ExperienceIDs  []int `json:"experience_ids"`
	EducationIDs   []int `json:"education_ids"`
	PublicationIDs []int `json:"publication_ids"`
	AwardIDs       []int `json:"award_ids"`

	MatchStrength       float64  `json:"match_strength"`
	MatchedCompetencies []string `json:"matched_competencies"`
	MissingCompetencies []string `json:"missing_competencies"`
}
