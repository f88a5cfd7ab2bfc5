package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/dashboard/pkg/app"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/options"
)

type SimOptions struct {
	VehicleID    string        `json:"vehicle-id" mapstructure:"vehicle-id"`
	Interval     time.Duration `json:"interval" mapstructure:"interval"`
	Coverage     float64       `json:"coverage" mapstructure:"coverage"`
	InvalidRatio float64       `json:"invalid-ratio" mapstructure:"invalid-ratio"`
	Seed         uint64        `json:"seed" mapstructure:"seed"`

	MqttOptions *options.MqttOptions `json:"mqtt" mapstructure:"mqtt"`
	Log         *log.Options         `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*SimOptions)(nil)

func NewSimOptions() *SimOptions {
	return &SimOptions{
		VehicleID:    "vh-001",
		Interval:     100 * time.Millisecond,
		Coverage:     0.7,
		InvalidRatio: 0.05,
		Seed:         1,
		MqttOptions:  options.NewMqttOptions(),
		Log:          log.NewOptions(),
	}
}

func (o *SimOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.addSimFlags(fss.FlagSet("simulation"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *SimOptions) addSimFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.VehicleID, "vehicle-id", o.VehicleID, "Vehicle whose telemetry topic receives the readings.")
	fs.DurationVar(&o.Interval, "interval", o.Interval, "Delay between two readings.")
	fs.Float64Var(&o.Coverage, "coverage", o.Coverage, "Probability that a channel is present in a reading.")
	fs.Float64Var(&o.InvalidRatio, "invalid-ratio", o.InvalidRatio, "Probability that a present value is out of range.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Seed of the reading sequence.")
}

func (o *SimOptions) Complete() error {
	return nil
}

func (o *SimOptions) Validate() error {
	errs := []error{}
	if o.VehicleID == "" {
		errs = append(errs, errors.New("--vehicle-id must not be empty"))
	}
	if o.Interval <= 0 {
		errs = append(errs, fmt.Errorf("--interval must be positive, got %s", o.Interval))
	}
	if o.Coverage <= 0 || o.Coverage > 1 {
		errs = append(errs, fmt.Errorf("--coverage must be in (0, 1], got %v", o.Coverage))
	}
	if o.InvalidRatio < 0 || o.InvalidRatio > 1 {
		errs = append(errs, fmt.Errorf("--invalid-ratio must be in [0, 1], got %v", o.InvalidRatio))
	}
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}
