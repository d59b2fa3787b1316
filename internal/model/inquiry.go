package model

// Inquiry is the "I'm interested" contact form
type Inquiry struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Location       string `json:"location"`
	InterestedPlot string `json:"interestedPlot"`
}

// InquiryFor returns a form prefilled with the plot name
func InquiryFor(p Plot) Inquiry {
	return Inquiry{InterestedPlot: p.Name}
}
