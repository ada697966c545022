package shell

import "strings"

// Hostname probes the machine name with `uname -n`, falling back to
// `hostname`, and strips any domain suffix. Both probes run
// non-critically and quietly; only the total absence of a hostname is
// fatal.
func (r *Runner) Hostname() (string, error) {
	probe := Opts{NonCritical: true, Quiet: true}

	res, _ := r.Run([]string{"uname", "-n"}, probe)
	if res.Failed() || res.Out() == "" {
		res, _ = r.Run([]string{"hostname"}, probe)
	}
	if res.Failed() || res.Out() == "" {
		return "", r.notifier.Fatalf(res, "could not retrieve hostname")
	}
	host, _, _ := strings.Cut(res.Out(), ".")
	return host, nil
}
