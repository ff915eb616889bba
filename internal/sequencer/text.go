/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package sequencer

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// chars splits s into the units revealed one at a time.
func chars(s string) []rune {
	return []rune(norm.NFC.String(s))
}

func placeholderText(index int) string {
	return fmt.Sprintf("%d. %s", index+1, strings.Repeat("-", PlaceholderWidth))
}

func revealPrefix(index int) string {
	return fmt.Sprintf("%d. ", index+1)
}

func revealText(answer string, points int) string {
	return fmt.Sprintf("%s - %d pts", answer, points)
}

// RowText is the fully revealed text of the answer row at index.
func RowText(index int, answer string, points int) string {
	return revealPrefix(index) + norm.NFC.String(revealText(answer, points))
}

func rowID(index int) string {
	return fmt.Sprintf("row-%d", index)
}

func stripeID(index int) string {
	return fmt.Sprintf("stripe-%d", index)
}

func markerID(region Region, index int) string {
	return fmt.Sprintf("marker-%s-%d", region, index)
}

func scoreID(region Region) string {
	return "score-" + string(region)
}

func bigXID(region Region) string {
	return "bigx-" + string(region)
}
