package domain

import (
	"fmt"
	"strings"
)

// BuildContent assembles the display text of a page body from its hero,
// end result, pricing options and reviews. Sections whose fields are all
// absent are omitted. The result is for display only and never parsed back.
func BuildContent(body Document) string {
	var sections []string
	for _, build := range []func(Document) string{
		heroSection,
		endResultSection,
		pricingSection,
		reviewsSection,
	} {
		if s := build(body); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n\n")
}

func heroSection(body Document) string {
	hero, ok := body.Map(BodyHero)
	if !ok {
		return ""
	}
	var lines []string
	if s, ok := hero.NonEmptyString("tagline"); ok {
		lines = append(lines, s)
	}
	if s, ok := hero.NonEmptyString("description"); ok {
		lines = append(lines, s)
	}
	if s, ok := hero.NonEmptyString("clientName"); ok {
		lines = append(lines, "Client: "+s)
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Hero\n" + strings.Join(lines, "\n")
}

// endResultSection accepts either a plain string or an object with a quote.
func endResultSection(body Document) string {
	quote, ok := body.NonEmptyString("endResult")
	if !ok {
		er, isMap := body.Map("endResult")
		if !isMap {
			return ""
		}
		if quote, ok = er.NonEmptyString("quote"); !ok {
			return ""
		}
	}
	return fmt.Sprintf("## End Result\n%q", quote)
}

func pricingSection(body Document) string {
	options, ok := body.Slice("pricingOptions")
	if !ok || len(options) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## Pricing Options (%d)", len(options))
	for _, item := range options {
		opt, ok := AsDocument(item)
		if !ok {
			continue
		}
		title, _ := opt.String("title")
		desc, _ := opt.String("description")
		switch {
		case title != "" && desc != "":
			fmt.Fprintf(&b, "\n- %s: %s", title, desc)
		case title != "":
			fmt.Fprintf(&b, "\n- %s", title)
		case desc != "":
			fmt.Fprintf(&b, "\n- %s", desc)
		}
	}
	return b.String()
}

func reviewsSection(body Document) string {
	reviews, ok := body.Slice("reviews")
	if !ok || len(reviews) == 0 {
		return ""
	}
	var lines []string
	for _, item := range reviews {
		r, ok := AsDocument(item)
		if !ok {
			continue
		}
		author, _ := r.String("author")
		title, _ := r.String("title")
		text, _ := r.String("text")
		if author == "" && text == "" {
			continue
		}
		who := author
		if title != "" {
			who = fmt.Sprintf("%s (%s)", author, title)
		}
		lines = append(lines, fmt.Sprintf("- %s: %q", strings.TrimSpace(who), text))
	}
	if len(lines) == 0 {
		return ""
	}
	return "## Reviews\n" + strings.Join(lines, "\n")
}
