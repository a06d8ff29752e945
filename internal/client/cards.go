package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hongminglow/varadhi-be/internal/models"
)

// ListingKeys are the wire keys of a listing, in display order.
var ListingKeys = []string{"SOCIETY_NAME", "ORGANISATION_NEED", "SERVICE", "STATE", "DISTRICT", "PINCODE"}

// HumanizeKey turns a wire key such as ORGANISATION_NEED into "Organisation Need".
func HumanizeKey(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// WriteCards renders one card per listing, or a no-results line.
func WriteCards(w io.Writer, listings []models.Listing) error {
	if len(listings) == 0 {
		_, err := fmt.Fprintln(w, "No services found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, l := range listings {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", orNA(l.SocietyName))
		for j, v := range l.Fields() {
			fmt.Fprintf(tw, "%s:\t%s\n", HumanizeKey(ListingKeys[j]), orNA(v))
		}
	}
	return tw.Flush()
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
