package domain

// ContactMessage is a note sent to the store through the contact form.
type ContactMessage struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required,max=200"`
	Message string `validate:"required,max=5000"`
}
