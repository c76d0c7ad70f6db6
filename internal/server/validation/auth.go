package validation

// RegisterInput: проверенное тело регистрации.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginInput: проверенное тело логина.
type LoginInput struct {
	Email    string
	Password string
}

var (
	emailField = field{name: "email", rules: []rule{
		{"email", "Invalid email format"},
		{"max=255", "Email is too long"},
	}}
	passwordField = field{name: "password", rules: []rule{
		{"min=8", "Password must be at least 8 characters"},
		{"max=100", "Password is too long"},
	}}

	registerShape = shape{
		{name: "firstName", rules: []rule{
			{"min=2", "First name is too short"},
			{"max=50", "First name is too long"},
		}},
		{name: "lastName", rules: []rule{
			{"min=2", "Last name is too short"},
			{"max=50", "Last name is too long"},
		}},
		emailField,
		passwordField,
	}

	loginShape = shape{emailField, passwordField}
)

// ParseRegister проверяет тело POST /auth/register.
func ParseRegister(input any) Result[RegisterInput] {
	v, errs := registerShape.check(input)
	if errs != nil {
		return fail[RegisterInput](errs)
	}
	return Result[RegisterInput]{Value: RegisterInput{
		FirstName: v["firstName"].(string),
		LastName:  v["lastName"].(string),
		Email:     v["email"].(string),
		Password:  v["password"].(string),
	}}
}

// ParseLogin проверяет тело POST /auth/login.
func ParseLogin(input any) Result[LoginInput] {
	v, errs := loginShape.check(input)
	if errs != nil {
		return fail[LoginInput](errs)
	}
	return Result[LoginInput]{Value: LoginInput{
		Email:    v["email"].(string),
		Password: v["password"].(string),
	}}
}
