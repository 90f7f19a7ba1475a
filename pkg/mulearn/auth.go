package mulearn

import "context"

// Tokens is the credential pair returned by the login endpoints.
type Tokens struct {
	ID           string `json:"id"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserType distinguishes the two account kinds in password-reset flows.
type UserType string

const (
	UserTypeCompany   UserType = "company"
	UserTypeRecruiter UserType = "recruiter"
)

// LoginCompany authenticates a company account. The upstream expects the
// email under the "username" key for companies.
func (c *Client) LoginCompany(ctx context.Context, email, password string) (Tokens, error) {
	var out Tokens
	err := c.post(ctx, "/launchpad/login-company/", "", map[string]string{
		"username": email,
		"password": password,
	}, &out)
	return out, err
}

// LoginRecruiter authenticates a recruiter account.
func (c *Client) LoginRecruiter(ctx context.Context, email, password string) (Tokens, error) {
	var out Tokens
	err := c.post(ctx, "/launchpad/login-recruiter/", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// CompanySignup is the registration payload for a new company.
type CompanySignup struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	POCName  string `json:"poc_name"`
	POCRole  string `json:"poc_role"`
	POCEmail string `json:"poc_email"`
	POCPhone string `json:"poc_phone"`
}

// RegisterCompany creates a company account pending verification.
func (c *Client) RegisterCompany(ctx context.Context, signup CompanySignup) error {
	return c.post(ctx, "/launchpad/register-company/", "", signup, nil)
}

// RecruiterSignup is the registration payload for a recruiter under an
// existing company. Requires a company-authenticated token.
type RecruiterSignup struct {
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

// RegisterRecruiter creates a recruiter account for the token's company.
func (c *Client) RegisterRecruiter(ctx context.Context, token string, signup RecruiterSignup) error {
	return c.post(ctx, "/launchpad/register-recruiter/", token, signup, nil)
}

// CompanyInfo fetches the profile for the given company id.
func (c *Client) CompanyInfo(ctx context.Context, token, companyID string) (Company, error) {
	var out Company
	err := c.post(ctx, "/launchpad/company-info/", token, map[string]string{
		"company_id": companyID,
	}, &out)
	return out, err
}

// RecruiterInfo fetches the profile for the given recruiter id.
func (c *Client) RecruiterInfo(ctx context.Context, token, recruiterID string) (Recruiter, error) {
	var out Recruiter
	err := c.post(ctx, "/launchpad/recruiter-info/", token, map[string]string{
		"recruiter_id": recruiterID,
	}, &out)
	return out, err
}

// ForgotPassword triggers a reset email for the account.
func (c *Client) ForgotPassword(ctx context.Context, email string, userType UserType) error {
	return c.post(ctx, "/launchpad/forgot-password/", "", map[string]string{
		"email":     email,
		"user_type": string(userType),
	}, nil)
}

// VerifyResetToken checks a reset token before showing the reset form.
func (c *Client) VerifyResetToken(ctx context.Context, token string, userType UserType) error {
	return c.post(ctx, "/launchpad/verify-reset-token/", "", map[string]string{
		"token":     token,
		"user_type": string(userType),
	}, nil)
}

// ResetPassword consumes a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token string, userType UserType, newPassword, confirmPassword string) error {
	return c.post(ctx, "/launchpad/reset-password/", "", map[string]string{
		"token":            token,
		"user_type":        string(userType),
		"new_password":     newPassword,
		"confirm_password": confirmPassword,
	}, nil)
}
