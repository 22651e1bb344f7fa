package models

// FieldKind is the declared type of a dynamic field.
type FieldKind string

const (
	FieldText           FieldKind = "text"
	FieldNumber         FieldKind = "number"
	FieldDecimal        FieldKind = "decimal"
	FieldDate           FieldKind = "date"
	FieldSingleChoice   FieldKind = "single-choice"
	FieldMultipleChoice FieldKind = "multiple-choice"
)

// IsChoice reports whether the kind is answered from a fixed option set.
func (k FieldKind) IsChoice() bool {
	return k == FieldSingleChoice || k == FieldMultipleChoice
}

// ScannableDocument is the document-scanning hint attached to a section.
type ScannableDocument string

const (
	StudentCard         ScannableDocument = "student_card"
	IdentityCard        ScannableDocument = "identity_card"
	Passport            ScannableDocument = "passport"
	BirthCertificate    ScannableDocument = "birth_certificate"
	VehicleIdentityCard ScannableDocument = "vehicle_identity_card"
	DriverLicense       ScannableDocument = "driver_license"
	AnyDocument         ScannableDocument = "any"
)

// --- DynamicField ---
type DynamicField struct {
	Placeholder string    `bson:"placeholder" json:"placeholder" validate:"required" example:"nume"`
	Type        FieldKind `bson:"type" json:"type" validate:"required,oneof=text number decimal date single-choice multiple-choice" example:"text"`
	Mandatory   bool      `bson:"mandatory" json:"mandatory" example:"true"`
	Keywords    []string  `bson:"keywords,omitempty" json:"keywords,omitempty"`
	Options     []string  `bson:"options,omitempty" json:"options,omitempty"`
}

// FieldShape is the kind-dependent payload of a dynamic field: either
// ChoiceShape or KeywordShape.
type FieldShape interface {
	isFieldShape()
}

// ChoiceShape is the payload of single-choice and multiple-choice fields.
type ChoiceShape struct {
	Options []string
}

// KeywordShape is the payload of free-text fields, matched by document scanning.
type KeywordShape struct {
	Keywords []string
}

func (ChoiceShape) isFieldShape()  {}
func (KeywordShape) isFieldShape() {}

// Shape selects the payload that applies to the field's kind. The other list
// is ignored.
func (f DynamicField) Shape() FieldShape {
	if f.Type.IsChoice() {
		return ChoiceShape{Options: f.Options}
	}
	return KeywordShape{Keywords: f.Keywords}
}

// --- DocumentSection ---
type DocumentSection struct {
	ScanDocumentType ScannableDocument `bson:"scan_document_type" json:"scan_document_type" validate:"required,oneof=student_card identity_card passport birth_certificate vehicle_identity_card driver_license any" example:"student_card"`
	Text             string            `bson:"text" json:"text" example:"Studentul <nume>, anul <anul>."`
}

// --- Form ---
type Form struct {
	ID                  string            `bson:"_id" json:"id" example:"9dbfce20-a68c-40e4-ae42-d75f73cf2a6c"`
	OwnerID             string            `bson:"owner_id" json:"owner_id" example:"1398589c-1e13-48b5-9c89-d2c8ed26fcaf"`
	Title               string            `bson:"title" json:"title" example:"Document Permis Conducere"`
	DataRetentionPeriod int               `bson:"data_retention_period" json:"data_retention_period" example:"30"`
	Sections            []DocumentSection `bson:"sections" json:"sections"`
	DynamicFields       []DynamicField    `bson:"dynamic_fields" json:"dynamic_fields"`
}

// FormRequest is the body accepted when creating or replacing a form.
type FormRequest struct {
	Title               string            `json:"title" validate:"required" example:"Document Permis Conducere"`
	DataRetentionPeriod int               `json:"data_retention_period" validate:"required" example:"30"`
	Sections            []DocumentSection `json:"sections" validate:"dive"`
	DynamicFields       []DynamicField    `json:"dynamic_fields" validate:"unique=Placeholder,dive"`
}

// ShortForm is the listing view of a form.
type ShortForm struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	DataRetentionPeriod int    `json:"data_retention_period"`
}

// Short converts a form to its listing view.
func (f Form) Short() ShortForm {
	return ShortForm{ID: f.ID, Title: f.Title, DataRetentionPeriod: f.DataRetentionPeriod}
}
