package models

// AnonymizeRequest is the body of an archive-side anonymization call.
type AnonymizeRequest struct {
	// Replace maps tag names to the value written in the anonymized copy.
	Replace map[string]string `json:"Replace,omitempty"`
	// Keep lists tags copied verbatim.
	Keep []string `json:"Keep,omitempty"`
	// Force allows replacing identifying tags such as PatientID.
	Force bool `json:"Force"`
	// KeepPrivateTags retains vendor private tags.
	KeepPrivateTags bool `json:"KeepPrivateTags"`
}
