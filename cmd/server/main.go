// Command server starts the HenHur Arena websocket host: it wires the
// variant registry, the bot persona/handler catalogs, the lobby
// registry, and the websocket gateway, grounded on the teacher's
// apps/server/main.go (minus its auth/ledger/story subsystems, which
// are explicit non-goals here).
package main

import (
	"net/http"
	"os"
	"strings"

	"henhur-arena/bots"
	"henhur-arena/gameplay"
	"henhur-arena/henhur"
	"henhur-arena/lobby"
	"henhur-arena/transport"
	"henhur-arena/war"

	"github.com/sirupsen/logrus"
)

func main() {
	games := gameplay.NewRegistry()
	games.Register("henhur", henhur.NewGame)
	games.Register("war", war.New)
	games.Register("dice_factory", gameplay.NewUnimplementedGame("dice_factory"))
	games.Register("kill_team_draft", gameplay.NewUnimplementedGame("kill_team_draft"))
	games.Register("heist_city", gameplay.NewUnimplementedGame("heist_city"))

	personas := bots.DefaultRegistry()
	handlers := bots.NewHandlerRegistry()
	handlers.Register("henhur", bots.HenhurHandler{})
	handlers.Register("war", bots.WarHandler{})

	gw := transport.New(nil) // lobby registry wired in below, once constructed
	lby := lobby.New(games, personas, handlers, gw.Broadcast)
	gw.SetLobby(lby)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := strings.TrimSpace(os.Getenv("SERVER_ADDR"))
	if addr == "" {
		addr = ":18080"
	}
	logrus.WithField("addr", addr).Info("henhur-arena: starting websocket server")
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil {
		logrus.WithError(err).Fatal("henhur-arena: server failed")
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
