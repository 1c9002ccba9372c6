/*
Copyright © 2019 the InMAP authors.
This file is part of geomdist.

geomdist is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geomdist is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geomdist.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package geomdistutil holds the configuration and command-line
// interface for the geomdist library.
package geomdistutil

import (
	"fmt"
	"time"

	"github.com/ctessum/geom"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/geomdist"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger commands report their progress to.
var Log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose turns on debug-level logging.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "terminate",
			usage: `
              terminate specifies a distance at or below which the
              search may stop early. The reported distance is then an
              upper bound rather than the exact minimum. The default of
              0 computes the exact minimum distance.`,
			shorthand:  "t",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{distanceCmd.Flags()},
		},
		{
			name: "distance",
			usage: `
              distance specifies the threshold distance for the within
              command.`,
			shorthand:  "d",
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{withinCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOMDIST")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(distanceCmd)
	Root.AddCommand(withinCmd)
	Root.AddCommand(nearestCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geomdist: problem reading configuration file: %w", err)
		}
	}
	if Cfg.GetBool("verbose") {
		Log.Level = logrus.DebugLevel
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geomdist",
	Short: "Calculate minimum distances between planar geometries.",
	Long: `geomdist calculates the minimum distance and the closest point pair
between planar geometries read from GeoJSON files.
Use the subcommands specified below to access the functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOMDIST_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	SilenceUsage:      true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of geomdist.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("geomdist v%s\n", geomdist.Version)
	},
	DisableAutoGenTag: true,
}

var distanceCmd = &cobra.Command{
	Use:   "distance file0 file1",
	Short: "Calculate the minimum distance between two geometries.",
	Long: `distance calculates the minimum distance between the geometries in the
two given GeoJSON files and prints the distance and the closest point
pair. If --terminate is greater than zero, the search stops as soon as
it finds a point pair at most that far apart.`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g0, g1, err := readGeometryPair(args[0], args[1])
		if err != nil {
			return err
		}
		op, err := geomdist.NewDistanceOpTerminate(g0, g1, cast.ToFloat64(Cfg.Get("terminate")))
		if err != nil {
			return err
		}
		start := time.Now()
		d := op.Distance()
		pts := op.ClosestPoints()
		Log.WithFields(logrus.Fields{
			"file0":   args[0],
			"file1":   args[1],
			"elapsed": time.Since(start),
		}).Debug("calculated distance")
		cmd.Printf("distance: %g\n", d)
		cmd.Printf("closest points: %s %s\n", encodePoint(pts[0]), encodePoint(pts[1]))
		return nil
	},
}

var withinCmd = &cobra.Command{
	Use:   "within file0 file1",
	Short: "Check whether two geometries are within a distance of each other.",
	Long: `within reports whether the minimum distance between the geometries in
the two given GeoJSON files is no greater than --distance. It can be
faster than the distance command because the search stops as soon as
the answer is known.`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g0, g1, err := readGeometryPair(args[0], args[1])
		if err != nil {
			return err
		}
		within, err := geomdist.IsWithinDistance(g0, g1, cast.ToFloat64(Cfg.Get("distance")))
		if err != nil {
			return err
		}
		cmd.Printf("%v\n", within)
		return nil
	},
}

var nearestCmd = &cobra.Command{
	Use:   "nearest queryfile candidatefile...",
	Short: "Find the candidate geometry nearest to a query geometry.",
	Long: `nearest reads a query geometry and one or more candidate geometries
from GeoJSON files and prints the file name of, and distance to, the
candidate nearest to the query.`,
	Args:              cobra.MinimumNArgs(2),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := ReadGeometryFile(args[0])
		if err != nil {
			return err
		}
		candidates := make([]geom.Geom, len(args)-1)
		for i, path := range args[1:] {
			if candidates[i], err = ReadGeometryFile(path); err != nil {
				return err
			}
		}
		index, err := geomdist.NewGeomIndex(candidates)
		if err != nil {
			return err
		}
		start := time.Now()
		i, d, err := index.Nearest(q)
		if err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{
			"query":      args[0],
			"candidates": len(candidates),
			"elapsed":    time.Since(start),
		}).Debug("found nearest geometry")
		cmd.Printf("nearest: %s\n", args[1+i])
		cmd.Printf("distance: %g\n", d)
		return nil
	},
}

func readGeometryPair(path0, path1 string) (geom.Geom, geom.Geom, error) {
	g0, err := ReadGeometryFile(path0)
	if err != nil {
		return nil, nil, err
	}
	g1, err := ReadGeometryFile(path1)
	if err != nil {
		return nil, nil, err
	}
	return g0, g1, nil
}
