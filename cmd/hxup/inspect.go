package main

import (
	"fmt"
	"text/tabwriter"

	"golang.org/x/net/html"

	"github.com/pthm/hxup"
	"github.com/pthm/hxup/lib/dom"
)

func (a *app) inspect(s *session, path string) error {
	root, err := load(path)
	if err != nil {
		return err
	}
	s.engine.Compile(root, hxup.CompileOptions{})

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tVARIANT\tMETHOD\tURL\tTARGET\tFLAGS")

	var rows int
	dom.Walk(root, nil, func(n *html.Node) {
		if !dom.IsElement(n) {
			return
		}
		v := s.engine.VariantFor(n, false)
		if v == nil {
			return
		}
		rows++

		req, err := s.engine.RequestFor(n, hxup.FollowOptions{})
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t%v\n", label(n), s.names[v], err)
			return
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			label(n), s.names[v], req.Method, orDash(req.URL), orDash(req.Target), flags(n))
	})

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d followable element(s)\n", rows)
	return nil
}

// label renders tag#id for an element.
func label(n *html.Node) string {
	if id := dom.Attr(n, "id"); id != "" {
		return n.Data + "#" + id
	}
	return n.Data
}

func flags(n *html.Node) string {
	var out string
	for _, name := range []string{"up-instant", "up-preload", hxup.KeepAttribute} {
		if dom.HasAttr(n, name) {
			if out != "" {
				out += ","
			}
			out += name
		}
	}
	return orDash(out)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
