package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// AuthControllerRoutes holds the route paths the controller mounts
type AuthControllerRoutes struct {
	Register string
	Login    string
	Profile  string
}

// AuthController owns the HTTP surface of the authentication core. It binds
// payloads, runs the flows, and maps every failure to exactly one response.
type AuthController struct {
	Debug     bool
	Logger    Logger
	Routes    *AuthControllerRoutes
	Registrar *RegisterUserHandler
	Auther    *Authenticator
	Tokens    TokenIssuer
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Profile:  "/profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Registrar == nil {
		panic("Missing RegisterUserHandler in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenIssuer in auth controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithRegistrar(handler *RegisterUserHandler) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Registrar = handler
		return c
	}
}

func WithAuthenticator(auther *Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithTokenIssuer(tokens TokenIssuer) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// RegisterAuthRoutes mounts the auth endpoints on the given router, normally
// under an /auth group. The profile route doubles as the canonical guarded
// endpoint: it simply echoes the identity the guard attached.
func RegisterAuthRoutes(app fiber.Router, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Get(controller.Routes.Profile,
		RequireAuthWithLogger(controller.Tokens, controller.Logger),
		controller.ProfileShow,
	)

	return controller
}

// RegisterPost handles POST /auth/register
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := RegisterUserMessage{}

	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Info("register payload bind error: %s", err)
		return respondError(c, ErrMissingRequiredFields, "Registration failed")
	}

	if a.Debug {
		a.Logger.Debug("register payload: %s", print.MaybePrettyJSON(payload))
	}

	user, err := a.Registrar.Execute(c.UserContext(), payload)
	if err != nil {
		a.Logger.Error("registration failed for %s: %s", payload.UserID, err)
		return respondError(c, err, "Registration failed")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user.Profile(),
	})
}

// LoginRequest is the login payload
type LoginRequest struct {
	UserID   string `json:"user_id" form:"user_id"`
	Password string `json:"password" form:"password"`
}

// LoginPost handles POST /auth/login
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := LoginRequest{}

	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Info("login payload bind error: %s", err)
		return respondError(c, ErrMissingCredentials, "Login failed")
	}

	token, user, err := a.Auther.Login(c.UserContext(), payload.UserID, payload.Password)
	if err != nil {
		return respondError(c, err, "Login failed")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"user_id": user.UserID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
		},
	})
}

// ProfileShow echoes the identity attached by the guard
func (a *AuthController) ProfileShow(c *fiber.Ctx) error {
	identity, ok := IdentityFromRequest(c)
	if !ok {
		return respondError(c, ErrNoToken, "Token verification failed")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Protected route accessed successfully",
		"user":    identity,
	})
}
