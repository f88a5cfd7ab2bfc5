package options

import (
	"errors"
	"os"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/dashboard/internal/dashboard"
	"github.com/autopeer-io/dashboard/pkg/app"
	"github.com/autopeer-io/dashboard/pkg/log"
	"github.com/autopeer-io/dashboard/pkg/options"
)

type DashboardOptions struct {
	VehicleID string `json:"vehicle-id" mapstructure:"vehicle-id"`

	MqttOptions    *options.MqttOptions    `json:"mqtt" mapstructure:"mqtt"`
	RedisOptions   *options.RedisOptions   `json:"redis" mapstructure:"redis"`
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	GrpcOptions    *options.GrpcOptions    `json:"grpc" mapstructure:"grpc"`
	DisplayOptions *options.DisplayOptions `json:"display" mapstructure:"display"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var _ app.NamedFlagSetOptions = (*DashboardOptions)(nil)

func NewDashboardOptions() *DashboardOptions {
	o := &DashboardOptions{
		MqttOptions:    options.NewMqttOptions(),
		RedisOptions:   options.NewRedisOptions(),
		HttpOptions:    options.NewHttpOptions(),
		GrpcOptions:    options.NewGrpcOptions(),
		DisplayOptions: options.NewDisplayOptions(),
		Log:            log.NewOptions(),
	}

	return o
}

func (o *DashboardOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.addGenericFlags(fss.FlagSet("generic"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.RedisOptions.AddFlags(fss.FlagSet("redis"))
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.GrpcOptions.AddFlags(fss.FlagSet("grpc"))
	o.DisplayOptions.AddFlags(fss.FlagSet("display"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *DashboardOptions) addGenericFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.VehicleID, "vehicle-id", o.VehicleID, "Identifier of the vehicle whose telemetry is shown. Defaults to the hostname.")
}

// Complete defaults the vehicle ID to the hostname.
func (o *DashboardOptions) Complete() error {
	if o.VehicleID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return err
		}
		o.VehicleID = hostname
	}
	return nil
}

func (o *DashboardOptions) Validate() error {
	errs := []error{}
	if o.VehicleID == "" {
		errs = append(errs, errors.New("--vehicle-id must not be empty"))
	}
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.RedisOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.GrpcOptions.Validate()...)
	errs = append(errs, o.DisplayOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *DashboardOptions) Config() (*dashboard.Config, error) {
	return &dashboard.Config{
		VehicleID:      o.VehicleID,
		MqttOptions:    o.MqttOptions,
		RedisOptions:   o.RedisOptions,
		HttpOptions:    o.HttpOptions,
		GrpcOptions:    o.GrpcOptions,
		DisplayOptions: o.DisplayOptions,
	}, nil
}
