package main

import "github.com/okuzmin/concertcal/internal/cli"

func main() {
	cli.Execute()
}
