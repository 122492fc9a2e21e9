package main

import (
	"administracion.GO/cmd"
	"administracion.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
