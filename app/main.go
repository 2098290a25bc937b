// Author: SGS Locations (2026). Apache 2.0 License

package main

import (
	"photosync/app/server"
)

func main() {
	server.Start()
}
