package main

import "peoplehub/internal/app/server"

func main() {
	server.Run()
}
