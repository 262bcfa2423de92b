package sharecraft

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// sessionName is both the gorilla session name and the cookie name, so the
// wire format is session=<token>.
const sessionName = "session"

const sessionKeyPrefix = "session_"

// kvSessionStore implements gorilla's sessions.Store on top of the KV
// collaborator. The cookie carries only a random UUID token; the session
// payload lives server-side under session_<token> with a fixed TTL, so
// sessions end by expiry rather than revocation.
type kvSessionStore struct {
	kv      KV
	ttl     time.Duration
	options *sessions.Options
}

func newKVSessionStore(kv KV, ttl time.Duration, secure bool) *kvSessionStore {
	return &kvSessionStore{
		kv:  kv,
		ttl: ttl,
		options: &sessions.Options{
			Path:     "/",
			HttpOnly: true,
			MaxAge:   int(ttl / time.Second),
			SameSite: http.SameSiteStrictMode,
			Secure:   secure,
		},
	}
}

// Get returns the request-cached session, loading it on first use.
func (s *kvSessionStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session identified by the request's token cookie, or
// returns a fresh one when the cookie is missing, unknown, or expired.
func (s *kvSessionStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.options
	sess.Options = &opts
	sess.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return sess, nil
	}
	payload, ok := s.kv.Get(sessionKeyPrefix + cookie.Value)
	if !ok {
		return sess, nil
	}
	values := make(map[string]any)
	if err := json.Unmarshal([]byte(payload), &values); err != nil {
		return sess, nil
	}
	sess.ID = cookie.Value
	sess.IsNew = false
	for k, v := range values {
		sess.Values[k] = v
	}
	return sess, nil
}

// Save writes the session payload to the KV store and sets the token
// cookie. A negative MaxAge drops the cookie and leaves the server-side
// entry to expire on its own.
func (s *kvSessionStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge < 0 {
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	values := make(map[string]any, len(sess.Values))
	for k, v := range sess.Values {
		if key, ok := k.(string); ok {
			values[key] = v
		}
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return err
	}
	s.kv.Put(sessionKeyPrefix+sess.ID, string(payload), s.ttl)
	http.SetCookie(w, sessions.NewCookie(sess.Name(), sess.ID, sess.Options))
	return nil
}

// currentAuth reads the session attached to the request and returns an
// explicit AuthStatus for the call chain.
func currentAuth(c echo.Context) AuthStatus {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return AuthStatus{}
	}
	auth, ok := sess.Values["authenticated"].(bool)
	if !ok || !auth {
		return AuthStatus{}
	}
	username, _ := sess.Values["username"].(string)
	return AuthStatus{Authenticated: true, Username: username}
}

func setAdminSession(c echo.Context, username string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	sess.Values["username"] = username
	return sess.Save(c.Request(), c.Response())
}

func clearAdminSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
