package model

type NumericUnit string

const (
	NumericUnitWatt         NumericUnit = "W"
	NumericUnitKiloWatt     NumericUnit = "kW"
	NumericUnitKiloWattHour NumericUnit = "kWh"
	NumericUnitKiloWattPeak NumericUnit = "kWp"
	NumericUnitNone         NumericUnit = ""
)

// MetricSlug names the plant-data fields the integration tracks.
type MetricSlug string

func (ms MetricSlug) String() string {
	return string(ms)
}

const (
	MetricCapacity     MetricSlug = "capacity"
	MetricTodayEnergy  MetricSlug = "today_energy"
	MetricTotalEnergy  MetricSlug = "total_energy"
	MetricCurrentPower MetricSlug = "current_power"
)

// MetricUnits maps each tracked metric onto its unit of measurement.
var MetricUnits = map[MetricSlug]NumericUnit{
	MetricCapacity:     NumericUnitKiloWattPeak,
	MetricTodayEnergy:  NumericUnitKiloWattHour,
	MetricTotalEnergy:  NumericUnitKiloWattHour,
	MetricCurrentPower: NumericUnitWatt,
}
