package sanitize

import (
	"regexp"
	"strings"
)

// riskPattern names one kind of destructive command.
type riskPattern struct {
	name string
	re   *regexp.Regexp
}

// destructivePatterns are checked against command lines built for
// `pick --exec`.
var destructivePatterns = []riskPattern{
	// File deletion
	{name: "rm -rf", re: regexp.MustCompile(`\brm\s+(-[a-zA-Z]*r[a-zA-Z]*f|--recursive\s+--force|-[a-zA-Z]*f[a-zA-Z]*r)\b`)},
	{name: "rm -r", re: regexp.MustCompile(`\brm\s+-[a-zA-Z]*r\b`)},
	{name: "rm -f", re: regexp.MustCompile(`\brm\s+-[a-zA-Z]*f\b`)},
	{name: "find -delete", re: regexp.MustCompile(`\bfind\b.*\s-delete\b`)},

	// Git
	{name: "git force push", re: regexp.MustCompile(`\bgit\s+push\s+.*(-f\b|--force\b)`)},
	{name: "git reset --hard", re: regexp.MustCompile(`\bgit\s+reset\s+--hard\b`)},
	{name: "git clean -f", re: regexp.MustCompile(`\bgit\s+clean\s+-[a-zA-Z]*[fd]`)},
	{name: "git checkout .", re: regexp.MustCompile(`\bgit\s+checkout\s+\.`)},

	// Permissions
	{name: "chmod 777", re: regexp.MustCompile(`\bchmod\s+777\b`)},
	{name: "chmod -R", re: regexp.MustCompile(`\bchmod\s+-[a-zA-Z]*R\b`)},
	{name: "chown -R", re: regexp.MustCompile(`\bchown\s+-[a-zA-Z]*R\b`)},

	// Disks
	{name: "write to device", re: regexp.MustCompile(`>\s*/dev/(sd[a-z]|hd[a-z]|nvme\d|vd[a-z]|xvd[a-z]|disk\d)`)},
	{name: "dd to device", re: regexp.MustCompile(`\bdd\s+.*of=/dev/`)},
	{name: "mkfs", re: regexp.MustCompile(`\bmkfs(\.[a-z0-9]+)?\b`)},

	// Shell tricks
	{name: "pipe to shell", re: regexp.MustCompile(`\b(curl|wget)\b[^|]*\|\s*(sudo\s+)?(ba|z)?sh\b`)},
	{name: "fork bomb", re: regexp.MustCompile(`:\(\)\s*\{\s*:\|:&\s*\};:`)},

	// Processes
	{name: "kill -9", re: regexp.MustCompile(`\bkill\s+-9\b`)},
	{name: "killall", re: regexp.MustCompile(`\b(killall|pkill)\b`)},

	// Databases and clusters
	{name: "DROP", re: regexp.MustCompile(`(?i)\bDROP\s+(TABLE|DATABASE|SCHEMA)\b`)},
	{name: "TRUNCATE", re: regexp.MustCompile(`(?i)\bTRUNCATE\s+(TABLE\s+)?\w`)},
	{name: "kubectl delete", re: regexp.MustCompile(`\bkubectl\s+delete\b`)},
	{name: "docker prune", re: regexp.MustCompile(`\bdocker\s+(system|volume|image)\s+prune\b`)},
}

// Risk returns the name of the first destructive pattern command matches,
// or "" when none does.
func Risk(command string) string {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return ""
	}
	for _, p := range destructivePatterns {
		if p.re.MatchString(cmd) {
			return p.name
		}
	}
	return ""
}

// IsDestructive reports whether command matches any destructive pattern.
func IsDestructive(command string) bool {
	return Risk(command) != ""
}
