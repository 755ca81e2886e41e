package main

import "github.com/ytget/repo-downloader/cmd"

func main() {
	cmd.Execute()
}
