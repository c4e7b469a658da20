package models

// Team is a registered hackathon team. Members are owned by their team.
type Team struct {
	ID                 string            `json:"id"`
	ExternalCode       string            `json:"externalCode"`
	Title              string            `json:"title"`
	ProblemStatementID *string           `json:"problemStatementId,omitempty"`
	ProblemStatement   *ProblemStatement `json:"problemStatement,omitempty"`
	Members            []Member          `json:"members"`
	PaymentVerified    bool              `json:"paymentVerified"`
}

// Member belongs to exactly one team.
type Member struct {
	ID             string `json:"id"`
	TeamID         string `json:"teamId"`
	Name           string `json:"name"`
	ContactInfo    string `json:"contactInfo"`
	CollegeInfo    string `json:"collegeInfo"`
	AttendanceFlag bool   `json:"attendanceFlag"`
	ShirtSize      string `json:"shirtSize"`
}

// TeamPatch carries admin edits to a team. Nil fields are left untouched.
type TeamPatch struct {
	Title              *string `json:"title,omitempty"`
	ProblemStatementID *string `json:"problemStatementId,omitempty"`
}

// MemberPatch carries admin edits to a member. Nil fields are left untouched.
type MemberPatch struct {
	Name           *string `json:"name,omitempty"`
	ContactInfo    *string `json:"contactInfo,omitempty"`
	CollegeInfo    *string `json:"collegeInfo,omitempty"`
	AttendanceFlag *bool   `json:"attendanceFlag,omitempty"`
	ShirtSize      *string `json:"shirtSize,omitempty"`
}

// Registration is the public team registration submission.
type Registration struct {
	Title              string        `json:"title"`
	ProblemStatementID string        `json:"problemStatementId"`
	Members            []MemberInput `json:"members"`
	PaymentReference   string        `json:"paymentReference,omitempty"`
}

// MemberInput describes one member in a registration.
type MemberInput struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
	CollegeInfo string `json:"collegeInfo"`
	ShirtSize   string `json:"shirtSize"`
}

// RegistrationReceipt is returned after a registration is accepted.
type RegistrationReceipt struct {
	TeamID       string `json:"teamId"`
	ExternalCode string `json:"externalCode"`
}

// PaymentConfirmation links a payment screenshot to a registered team.
type PaymentConfirmation struct {
	ExternalCode  string `json:"externalCode"`
	TransactionID string `json:"transactionId"`
	ScreenshotURL string `json:"screenshotUrl"`
}
