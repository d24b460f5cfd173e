package main

import "github.com/namefreezers/forecast-qr-api/internal/cmd"

func main() {
	cmd.Execute()
}
