package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spacetrucker2196/galacticcic/internal/model"
)

// nmapPortRe matches an open-port line of `nmap` output, e.g.:
//
//	22/tcp   open  ssh
var nmapPortRe = regexp.MustCompile(`^(\d+)/(tcp|udp)\s+(\S+)\s+(\S+)`)

// nmapOSGuessRe matches nmap's best-effort OS guess line.
var nmapOSGuessRe = regexp.MustCompile(`(?i)(?:OS guesses?|Running)[:\s]+(.+)`)

// ParseNmap extracts the open-port list and a best-effort OS guess
// from the raw output of a single-host nmap scan. Lines that don't
// match are ignored; if nothing is found the result has an empty
// Ports slice and an empty OSGuess, which the collector treats as
// "scan yielded no data" rather than an error.
func ParseNmap(ip, raw string) model.NmapResult {
	result := model.NmapResult{IP: ip}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if m := nmapPortRe.FindStringSubmatch(line); m != nil {
			port, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			result.Ports = append(result.Ports, model.PortScan{
				Port:    port,
				Service: m[4],
				State:   m[3],
			})
			continue
		}
		if result.OSGuess == "" {
			if m := nmapOSGuessRe.FindStringSubmatch(line); m != nil {
				result.OSGuess = strings.TrimSpace(m[1])
			}
		}
	}
	return result
}
