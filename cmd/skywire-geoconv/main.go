/* Latitude/longitude <-> UTM conversion for plotting decoded telemetry
 * positions on a paper chart, ported from the teacher's
 * samoyed-ll2utm / samoyed-utm2ll pair into one subcommand-driven
 * tool. */
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/irig106tm/skywire/internal/skywire"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ll2utm":
		ll2utm(os.Args[2:])
	case "utm2ll":
		utm2ll(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func ll2utm(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: skywire-geoconv ll2utm <latitude> <longitude>")
		os.Exit(1)
	}
	lat, errLat := strconv.ParseFloat(args[0], 64)
	lon, errLon := strconv.ParseFloat(args[1], 64)
	if errLat != nil || errLon != nil {
		fmt.Println("latitude and longitude must be decimal degrees")
		os.Exit(1)
	}

	utm, err := skywire.ToUTM(lat, lon)
	if err != nil {
		fmt.Println("conversion to UTM failed:", err)
		os.Exit(1)
	}
	fmt.Printf("UTM zone=%d hemisphere=%c easting=%.0f northing=%.0f\n",
		utm.Zone, utm.Hemisphere, utm.EastingM, utm.NorthingM)
}

func utm2ll(args []string) {
	if len(args) != 4 {
		fmt.Println("usage: skywire-geoconv utm2ll <zone> <N|S> <easting> <northing>")
		os.Exit(1)
	}
	zone, errZone := strconv.Atoi(args[0])
	hemi := []rune(args[1])[0]
	easting, errE := strconv.ParseFloat(args[2], 64)
	northing, errN := strconv.ParseFloat(args[3], 64)
	if errZone != nil || errE != nil || errN != nil {
		fmt.Println("zone, easting, and northing must be numeric")
		os.Exit(1)
	}

	lat, lon, err := skywire.FromUTM(skywire.UTM{
		Zone:       zone,
		Hemisphere: hemi,
		EastingM:   easting,
		NorthingM:  northing,
	})
	if err != nil {
		fmt.Println("conversion from UTM failed:", err)
		os.Exit(1)
	}
	fmt.Printf("latitude=%.6f longitude=%.6f\n", lat, lon)
}

func usage() {
	fmt.Println(skywire.BuildInfo())
	fmt.Println("usage:")
	fmt.Println("  skywire-geoconv ll2utm  <latitude>  <longitude>")
	fmt.Println("  skywire-geoconv utm2ll  <zone>  <N|S>  <easting>  <northing>")
}
