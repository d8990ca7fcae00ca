package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
)

// SessionKey stores the request's *database.Session on the echo context.
const SessionKey = "session"

var errNoSession = errors.New("middleware: no database session on request")

// UnitOfWork gives every request its own database session.
type UnitOfWork struct {
	server *server.Server
}

func NewUnitOfWork(s *server.Server) *UnitOfWork {
	return &UnitOfWork{server: s}
}

// Session opens a session bound to the request context before the handler
// runs and closes it afterwards, rolling back anything not committed.
func (u *UnitOfWork) Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := u.server.DB.NewSession(c.Request().Context())
			c.Set(SessionKey, sess)

			defer func() {
				if err := sess.Close(); err != nil {
					GetLogger(c).Error().Err(err).Msg("failed to close database session")
				}
			}()

			return next(c)
		}
	}
}

// GetSession returns the session opened by UnitOfWork.Session.
func GetSession(c echo.Context) (*database.Session, error) {
	if sess, ok := c.Get(SessionKey).(*database.Session); ok {
		return sess, nil
	}
	return nil, errNoSession
}
