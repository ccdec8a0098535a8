package main

import "fmt"

// DoctorCommand chains the individual environment checks into one pass so a
// new contributor gets a single verdict instead of running each by hand.
type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (deps + db)"
}

func (c *DoctorCommand) Run(args []string) error {
	banner("Doctor")

	checks := []struct {
		label string
		cmd   Command
	}{
		{"Dependencies", &CheckDepsCommand{}},
		{"Database", &CheckDBCommand{}},
	}

	failures := 0
	for _, check := range checks {
		if err := check.cmd.Run(nil); err != nil {
			fail("%s check failed: %v", check.label, err)
			failures++
			continue
		}
		ok("%s OK", check.label)
	}

	if failures > 0 {
		return fmt.Errorf("doctor found %d issue(s)", failures)
	}
	ok("Environment looks healthy")
	return nil
}
