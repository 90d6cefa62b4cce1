package httpserver

import (
	"net/http"
	"testing"
)

func signup(c *client, username, password string) *http.Response {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/auth/signup", map[string]string{"username": username, "password": password})
	return rec.Result()
}

func TestSignupLoginLogout(t *testing.T) {
	c := newClient(t, newTestServer(t, true))

	if res := signup(c, "ada", "lovelace1"); res.StatusCode != http.StatusCreated {
		t.Fatalf("Signup: expected 201, got %d", res.StatusCode)
	}
	if _, ok := c.cookies["endgame_token"]; !ok {
		t.Fatal("Expected auth cookie after signup")
	}

	me := decode[authUser](t, c.do(http.MethodGet, "/auth/me", nil))
	if me.Username != "ada" {
		t.Errorf("Expected ada, got %+v", me)
	}

	if res := signup(c, "ADA", "lovelace2"); res.StatusCode != http.StatusConflict {
		t.Errorf("Duplicate signup: expected 409, got %d", res.StatusCode)
	}

	c.do(http.MethodPost, "/auth/logout", nil)
	if rec := c.do(http.MethodGet, "/auth/me", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("After logout: expected 401, got %d", rec.Code)
	}

	bad := c.do(http.MethodPost, "/auth/login", map[string]string{"username": "ada", "password": "wrong-password"})
	if bad.Code != http.StatusUnauthorized {
		t.Errorf("Bad password: expected 401, got %d", bad.Code)
	}
	good := c.do(http.MethodPost, "/auth/login", map[string]string{"username": "ada", "password": "lovelace1"})
	if good.Code != http.StatusOK {
		t.Errorf("Login: expected 200, got %d", good.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	c := newClient(t, newTestServer(t, true))
	for _, tc := range []struct{ user, pass string }{
		{"ab", "longenough"},
		{"nice name", "longenough"},
		{"valid_name", "short"},
	} {
		if res := signup(c, tc.user, tc.pass); res.StatusCode != http.StatusBadRequest {
			t.Errorf("Signup %q/%q: expected 400, got %d", tc.user, tc.pass, res.StatusCode)
		}
	}
}

// newRandomGame starts a game on the configured supplier ("python").
func newRandomGame(c *client) gameRes {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/game/new", nil)
	if rec.Code != http.StatusCreated {
		c.t.Fatalf("new game: expected 201, got %d", rec.Code)
	}
	return decode[gameRes](c.t, rec)
}

func play(c *client, id, letters string) {
	c.t.Helper()
	for _, l := range letters {
		guess(c, id, string(l))
	}
}

func TestStatsAndHistory(t *testing.T) {
	c := newClient(t, newTestServer(t, true))

	// A round played as a guest is claimed on signup.
	play(c, newRandomGame(c).GameID, "python")

	signup(c, "grace", "hopper123")

	play(c, newRandomGame(c).GameID, "python")
	play(c, newRandomGame(c).GameID, "abcdefgi")

	stats := decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	if stats["gamesPlayed"] != float64(2) || stats["wins"] != float64(1) || stats["streak"] != float64(0) {
		t.Errorf("Unexpected stats %v", stats)
	}

	history := decode[[]resultRow](t, c.do(http.MethodGet, "/games/mine", nil))
	if len(history) != 3 {
		t.Fatalf("Expected 3 results including the claimed guest round, got %+v", history)
	}
	lost := 0
	for _, h := range history {
		if h.Status == "lost" {
			lost++
			if h.WrongGuesses != 8 {
				t.Errorf("Expected 8 wrong guesses recorded, got %d", h.WrongGuesses)
			}
		}
	}
	if lost != 1 {
		t.Errorf("Expected one lost round, got %d", lost)
	}
}

func TestChosenAnswerIsNotRecorded(t *testing.T) {
	c := newClient(t, newTestServer(t, true))
	signup(c, "linus", "penguin99")

	g := newGameWith(c, "go")
	play(c, g.GameID, "go")

	stats := decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	if stats["gamesPlayed"] != float64(0) || stats["wins"] != float64(0) {
		t.Errorf("Round on a chosen answer must not count, got %v", stats)
	}
	if history := decode[[]resultRow](t, c.do(http.MethodGet, "/games/mine", nil)); len(history) != 0 {
		t.Errorf("Expected no recorded rounds, got %+v", history)
	}

	// After a reset the word comes from the supplier and counts again.
	c.do(http.MethodPost, "/game/"+g.GameID+"/reset", nil)
	play(c, g.GameID, "python")

	stats = decode[map[string]any](t, c.do(http.MethodGet, "/stats/me", nil))
	if stats["gamesPlayed"] != float64(1) || stats["wins"] != float64(1) {
		t.Errorf("Expected the supplier round to count, got %v", stats)
	}
}

func TestSignupErrorsAreJSON(t *testing.T) {
	c := newClient(t, newTestServer(t, true))
	rec := c.do(http.MethodPost, "/auth/signup", map[string]string{"username": `a"b`, "password": "longenough"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["error"] == "" {
		t.Errorf("Expected an error message, got %v", body)
	}
}

func TestRequireAuth(t *testing.T) {
	c := newClient(t, newTestServer(t, true))
	for _, p := range []string{"/auth/me", "/stats/me", "/games/mine"} {
		if rec := c.do(http.MethodGet, p, nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", p, rec.Code)
		}
	}
}
