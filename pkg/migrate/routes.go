// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package migrate

import (
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

type ipCommandKind int

const (
	ipRouteAdd ipCommandKind = iota + 1
	ipRuleAdd
)

// ipOption is a keyword/value pair such as "via 10.0.0.1".
type ipOption struct {
	keyword string
	value   string
}

// ipCommand is the subset of an "ip route add" or "ip rule add" command
// line that maps onto networkd. options keep command line order.
type ipCommand struct {
	kind        ipCommandKind
	destination string
	options     []ipOption
}

var (
	routeKeywords = map[string]bool{"via": true, "table": true}
	ruleKeywords  = map[string]bool{"from": true, "table": true}
)

// splitCommand tokenizes a post-up command with shell quoting rules,
// falling back to whitespace splitting for lines the shell would reject.
func splitCommand(cmd string) []string {
	words, err := shellquote.Split(cmd)
	if err != nil {
		return strings.Fields(cmd)
	}
	return words
}

// parseIPCommand recognizes route and rule additions. ok is false for
// every other command.
func parseIPCommand(cmd string) (ipCommand, bool) {
	words := splitCommand(cmd)
	if len(words) == 0 || filepath.Base(words[0]) != "ip" {
		return ipCommand{}, false
	}

	// global options such as -4 or -6
	words = words[1:]
	for len(words) > 0 && strings.HasPrefix(words[0], "-") {
		words = words[1:]
	}
	if len(words) < 2 || words[1] != "add" {
		return ipCommand{}, false
	}

	switch words[0] {
	case "route":
		if len(words) < 3 {
			return ipCommand{}, false
		}
		c := ipCommand{
			kind:        ipRouteAdd,
			destination: words[2],
			options:     scanOptions(words[3:], routeKeywords),
		}
		if c.destination == "default" {
			c.destination = "0.0.0.0/0"
		}
		return c, true

	case "rule":
		return ipCommand{
			kind:    ipRuleAdd,
			options: scanOptions(words[2:], ruleKeywords),
		}, true
	}

	return ipCommand{}, false
}

// scanOptions walks keyword/value pairs, collecting known keywords and
// skipping every other token. A keyword at the end of the line has no
// value and is ignored.
func scanOptions(words []string, known map[string]bool) []ipOption {
	var opts []ipOption
	for i := 0; i < len(words); i++ {
		if !known[words[i]] || i+1 >= len(words) {
			continue
		}
		opts = append(opts, ipOption{keyword: words[i], value: words[i+1]})
		i++
	}
	return opts
}
