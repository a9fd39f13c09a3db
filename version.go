package main

import (
	"fmt"
)

var (
	Version   = "1.0.0"
	BuildDate = "2026-10-14"
)

func printBanner() {
	fmt.Printf(" ____         _     _              ____                         _\n|  _ \\   ___ | | __| |__    ___   / ___| _ __   __ _ __      __| |  ___  _ __\n| | | | / _ \\| |/ /| '_ \\  / _ \\ | |    | '__| / _` |\\ \\ /\\ / /| | / _ \\| '__|\n| |_| ||  __/|   < | | | || (_) || |___ | |   | (_| | \\ V  V / | ||  __/| |\n|____/  \\___||_|\\_\\|_| |_| \\___/  \\____||_|    \\__,_|  \\_/\\_/  |_| \\___||_|\n")

	fmt.Printf("Version: %s (Build: %s)\n", Version, BuildDate)
}
