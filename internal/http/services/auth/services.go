package auth

// Deps contiene las dependencias de los services auth.
type Deps struct {
	Platform Platform
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	Signup  SignupService
	Login   LoginService
	Token   TokenService
	Profile ProfileService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Signup:  NewSignupService(d.Platform),
		Login:   NewLoginService(d.Platform),
		Token:   NewTokenService(d.Platform),
		Profile: NewProfileService(d.Platform),
	}
}
