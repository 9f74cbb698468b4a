package models

// FieldType is a semantic category of profile or job data that is embedded
// and indexed independently. Similarity is only ever computed within one
// field type.
type FieldType string

const (
	FieldSkills           FieldType = "skills"
	FieldExperience       FieldType = "experience"
	FieldEducation        FieldType = "education"
	FieldResponsibilities FieldType = "responsibilities"
	FieldBenefits         FieldType = "benefits"
	FieldResume           FieldType = "resume"
	FieldProjects         FieldType = "projects"
)

func KnownFieldTypes() []FieldType {
	return []FieldType{
		FieldSkills,
		FieldExperience,
		FieldEducation,
		FieldResponsibilities,
		FieldBenefits,
		FieldResume,
		FieldProjects,
	}
}

// FieldVector is one embedded field of an entity. Immutable once created.
type FieldVector struct {
	EntityID   string    `json:"entity_id"`
	FieldType  FieldType `json:"field_type"`
	Vector     []float32 `json:"vector"`
	SourceText string    `json:"source_text"`
}

// VectorSet holds at most one vector per field type for a single entity.
type VectorSet map[FieldType]FieldVector

func (v VectorSet) Has(ft FieldType) bool {
	_, ok := v[ft]
	return ok
}
