package main

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates
var templatesFS embed.FS

const (
	cookieName  = "adboard_token"
	defaultPort = "3000"
	defaultAPI  = "http://localhost:8080"
	envWebPort  = "ADBOARD_WEB_PORT"
	envAPIURL   = "ADBOARD_API_URL"
)

func main() {
	port := getEnv(envWebPort, defaultPort)
	apiBase := getEnv(envAPIURL, defaultAPI)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health (no auth, no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public
	r.Get("/login", loginForm)
	r.Post("/login", loginSubmit(apiBase))
	r.Get("/logout", logout)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(requireAuth(apiBase))
		r.Get("/", redirectAds)
		r.Get("/ads", adLookup(apiBase))
		r.Get("/me", profile(apiBase))
	})

	log.Printf("Web UI running on http://localhost:%s (API: %s)", port, apiBase)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// requireAuth redirects to /login if the cookie is missing or if the API
// rejects the token (expired or invalid).
func requireAuth(apiBase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := r.Cookie(cookieName)
			if err != nil || token.Value == "" {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
				return
			}
			_, status, _ := apiGet(apiBase, "/users/me", token.Value)
			if status == http.StatusUnauthorized {
				clearAuthAndRedirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func redirectAds(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/ads", http.StatusFound)
}

func loginForm(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(cookieName); err == nil {
		http.Redirect(w, r, "/ads", http.StatusFound)
		return
	}
	renderTemplate(w, "login.html", nil)
}

func loginSubmit(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		username := strings.TrimSpace(r.FormValue("username"))
		password := r.FormValue("password")
		if username == "" || password == "" {
			renderTemplate(w, "login.html", map[string]string{"Error": "Username and password are required"})
			return
		}

		form := url.Values{"username": {username}, "password": {password}}
		resp, err := http.Post(apiBase+"/token",
			"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		if err != nil {
			renderTemplate(w, "login.html", map[string]string{"Error": "Cannot reach API: " + err.Error()})
			return
		}
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			var errResp struct{ Error string }
			_ = json.Unmarshal(data, &errResp)
			msg := errResp.Error
			if msg == "" {
				msg = string(data)
			}
			renderTemplate(w, "login.html", map[string]string{"Error": msg})
			return
		}

		var out struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(data, &out); err != nil || out.AccessToken == "" {
			renderTemplate(w, "login.html", map[string]string{"Error": "Invalid login response"})
			return
		}

		next := r.URL.Query().Get("next")
		if next == "" {
			next = "/ads"
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    out.AccessToken,
			Path:     "/",
			MaxAge:   3600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, next, http.StatusFound)
	}
}

func logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// clearAuthAndRedirectToLogin clears the token cookie and redirects to login with next=current path.
// Call when the API returns 401 (expired or invalid token) so the user can sign in again.
func clearAuthAndRedirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
	next := r.URL.Path
	if r.URL.RawQuery != "" {
		next += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, "/login?next="+url.QueryEscape(next), http.StatusFound)
}

type adView struct {
	ID       int    `json:"id"`
	AdID     int    `json:"ad_id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Views    int    `json:"views"`
	Position int    `json:"position"`
}

// adLookup renders the ad search form and, when ?id= is present, the result.
func adLookup(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := r.Cookie(cookieName)
		data := map[string]interface{}{}

		idStr := r.URL.Query().Get("id")
		if idStr != "" {
			if _, err := strconv.Atoi(idStr); err != nil {
				data["Error"] = "Ad id must be a number"
			} else {
				body, status, err := apiGet(apiBase, "/ads/"+idStr, token.Value)
				switch {
				case err != nil:
					data["Error"] = "Cannot reach API: " + err.Error()
				case status == http.StatusNotFound:
					data["Error"] = "No ad with id " + idStr
				case status != http.StatusOK:
					data["Error"] = string(body)
				default:
					var ad adView
					if err := json.Unmarshal(body, &ad); err != nil {
						data["Error"] = "Invalid API response"
					} else {
						data["Ad"] = ad
					}
				}
			}
		}

		renderTemplate(w, "ads.html", data)
	}
}

func profile(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := r.Cookie(cookieName)
		body, status, err := apiGet(apiBase, "/users/me", token.Value)
		if err != nil || status != http.StatusOK {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		var user struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(body, &user); err != nil {
			http.Error(w, "invalid API response", http.StatusBadGateway)
			return
		}
		renderTemplate(w, "me.html", user)
	}
}

// apiGet performs GET to the API with a bearer token.
func apiGet(apiBase, path, token string) ([]byte, int, error) {
	req, _ := http.NewRequest("GET", apiBase+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data, resp.StatusCode, nil
}

func renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
