// Author: SGS Locations (2026). Apache 2.0 License

package server

import (
	"net/http"

	"photosync/app/common"
	"photosync/app/config"
	"photosync/app/logging"
)

func Start() {
	// authorization flow
	http.HandleFunc("/api/smugmug/request-token", common.RequestToken)
	http.HandleFunc("/api/smugmug/callback", common.Callback)
	// historical callback path, still registered with the provider
	http.HandleFunc("/api/smugmug-callback", common.Callback)
	http.HandleFunc("/api/smugmug/check-auth", common.CheckAuth)
	http.HandleFunc("/api/smugmug/revoke", common.Revoke)

	// album resolution and import
	http.HandleFunc("/api/smugmug/albums", common.Albums)
	http.HandleFunc("/api/smugmug/resolve-album", common.ResolveAlbum)
	http.HandleFunc("/api/smugmug/import", common.Import)

	addr := config.GetConfig().Address
	logging.Logger.Println("listening on " + addr)
	// no write timeout on purpose: imports run for minutes on large albums
	err := http.ListenAndServe(addr, nil)
	if err != nil {
		logging.Logger.Fatalf("server stopped: %v", err)
	}
}
