package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"       _       _     __                          ", "#818cf8"},
	{"   ___| |_   _| |__ / _| ___  _ __ _ __ ___  ___ ", "#a78bfa"},
	{"  / __| | | | | '_ \\ |_ / _ \\| '__| '_ ` _ \\/ __|", "#c084fc"},
	{" | (__| | |_| | |_) |  _| (_) | |  | | | | | \\__ \\", "#e879f9"},
	{"  \\___|_|\\__,_|_.__/|_|  \\___/|_|  |_| |_| |_|___/", "#f472b6"},
}

// PrintBanner writes the clubforms banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
