package main

import "FaceAttendance/internal/cli"

func main() {
	cli.Execute()
}
