package main

import "github.com/jordannanyan/plagiarism-backend/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
