package main

import (
	"github.com/pgagudelom/otp-secret-messages/cli/cmd"
)

func main() {
	cmd.Execute()
}
