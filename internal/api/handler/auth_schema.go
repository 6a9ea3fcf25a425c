package handler

// registerRequest mirrors the admin panel's registration form. Required
// fields are checked in the service so the response can name the
// missing human label.
type registerRequest struct {
	RoleID               string  `json:"roleId"`
	ParentID             string  `json:"parentId"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Address              string  `json:"address"`
	BillingAddress       string  `json:"billingAddress"`
	Country              string  `json:"country"`
	City                 string  `json:"city"`
	PostalCode           string  `json:"postalCode"`
	Password             string  `json:"password"`
	InitialPaymentAmount float64 `json:"initialPaymentAmount"`
	InitialPaymentDue    string  `json:"initialPaymentDue"`
	InstallmentTime      string  `json:"installmentTime"`
}

// loginRequest authenticates by email or phone plus password.
type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// sendOTPRequest asks for a login code by email or phone. Type "admin"
// restricts issuance to users with an assigned role.
type sendOTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

// otpLoginRequest verifies an emailed one-time code.
type otpLoginRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}
