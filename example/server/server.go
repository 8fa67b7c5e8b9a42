package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-session/session/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/migrate"
	"github.com/legit-games/oauth2-server/models"
	"github.com/legit-games/oauth2-server/server"
	"github.com/legit-games/oauth2-server/store"
)

var (
	dumpvar   bool
	idvar     string
	secretvar string
	redirvar  string
	portvar   int
)

func init() {
	flag.BoolVar(&dumpvar, "d", true, "Dump requests and responses")
	flag.StringVar(&idvar, "i", "democlient1.com", "The client id being passed in")
	flag.StringVar(&secretvar, "s", "demosecret1", "The client secret being passed in")
	flag.StringVar(&redirvar, "r", "http://democlient1.com/redirect_uri", "The registered redirect uri")
	flag.IntVar(&portvar, "p", 9096, "the base port for the server")
}

func main() {
	flag.Parse()
	if dumpvar {
		log.Println("Dumping requests")
	}

	// Optionally run DB migrations before the server starts, e.g.
	// MIGRATE_ON_START=1 MIGRATE_DRIVER=sqlite MIGRATE_DSN=./oauth2.db
	if err := migrate.RunFromEnv(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	factory := store.NewMemoryFactory()
	if err := seedDemoData(factory); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	srv := server.NewDefaultServer(server.NewConfig(), factory, store.NewMemoryUserProvider(factory))
	srv.UserAuthorizationHandler = userAuthorizeHandler

	engine := server.NewGinEngine(srv)

	engine.GET("/login", func(c *gin.Context) { loginHandler(c.Writer, c.Request) })
	engine.POST("/login", func(c *gin.Context) { loginHandler(c.Writer, c.Request) })
	engine.GET("/auth", func(c *gin.Context) { authHandler(c.Writer, c.Request) })

	log.Printf("Server is running at %d port.", portvar)
	log.Printf("Point your OAuth client Auth endpoint to %s:%d%s", "http://localhost", portvar, "/oauth2/authorize")
	log.Printf("Point your OAuth client Token endpoint to %s:%d%s", "http://localhost", portvar, "/oauth2/token")
	log.Fatal(engine.Run(fmt.Sprintf(":%d", portvar)))
}

func seedDemoData(factory oauth2.ModelManagerFactory) error {
	ctx := context.Background()

	if err := factory.Client().Create(ctx, &models.Client{
		ID:           idvar,
		Secret:       secretvar,
		RedirectURIs: []string{redirvar},
		GrantTypes: []oauth2.GrantType{
			oauth2.AuthorizationCode,
			oauth2.ClientCredentials,
			oauth2.PasswordCredentials,
			oauth2.Refreshing,
		},
		Scope:        []string{"demoscope1", "demoscope2", "demoscope3", "debug"},
		DefaultScope: []string{"demoscope1"},
	}); err != nil {
		return err
	}

	for _, sc := range []*models.Scope{
		{Name: "demoscope1", Description: "first demo scope", Default: true},
		{Name: "demoscope2", Description: "second demo scope"},
		{Name: "demoscope3", Description: "third demo scope"},
		{Name: "debug", Description: "token introspection"},
	} {
		if err := factory.Scope().Create(ctx, sc); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demopassword1"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return factory.User().Create(ctx, &models.User{
		ID:           "demouser1",
		Username:     "demousername1",
		PasswordHash: string(hash),
	})
}

func dumpRequest(writer io.Writer, header string, r *http.Request) error {
	data, err := httputil.DumpRequest(r, true)
	if err != nil {
		return err
	}
	writer.Write([]byte("\n" + header + ": \n"))
	writer.Write(data)
	return nil
}

func userAuthorizeHandler(w http.ResponseWriter, r *http.Request) (userID string, err error) {
	if dumpvar {
		_ = dumpRequest(os.Stdout, "userAuthorizeHandler", r) // Ignore the error
	}
	store, err := session.Start(r.Context(), w, r)
	if err != nil {
		return
	}

	uid, ok := store.Get("LoggedInUserID")
	if !ok {
		if r.Form == nil {
			r.ParseForm()
		}
		store.Set("ReturnUri", r.Form)
		store.Save()

		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusFound)
		return
	}

	userID = uid.(string)
	store.Delete("LoggedInUserID")
	store.Save()
	return
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	if dumpvar {
		_ = dumpRequest(os.Stdout, "login", r) // Ignore the error
	}
	store, err := session.Start(r.Context(), w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method == "POST" {
		if r.Form == nil {
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		if r.Form.Get("username") == "demousername1" && r.Form.Get("password") == "demopassword1" {
			store.Set("LoggedInUserID", "demouser1")
			store.Save()

			w.Header().Set("Location", "/auth")
			w.WriteHeader(http.StatusFound)
			return
		}
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	outputHTML(w, r, "static/login.html")
}

func authHandler(w http.ResponseWriter, r *http.Request) {
	if dumpvar {
		_ = dumpRequest(os.Stdout, "auth", r) // Ignore the error
	}
	store, err := session.Start(r.Context(), w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, ok := store.Get("LoggedInUserID"); !ok {
		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusFound)
		return
	}

	outputHTML(w, r, "static/auth.html")
}

func outputHTML(w http.ResponseWriter, req *http.Request, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer file.Close()
	fi, _ := file.Stat()
	http.ServeContent(w, req, file.Name(), fi.ModTime(), file)
}
