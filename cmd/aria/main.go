package main

import "github.com/vansh-agarwal/Agent/internal/app"

func main() {
	app.Run()
}
