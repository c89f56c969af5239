package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
}

// force the vendor's timezone because the site renders reservation
// dates in its own locale; comparing them against a server clock in
// another zone shifts bookings across day boundaries
func Now() time.Time {
	return time.Now().In(Location)
}
