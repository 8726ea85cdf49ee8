package ports

import "time"

// Clock fuente de la hora actual. Un Clock nil usa el reloj del sistema.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
