package collector

import (
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// DTUCollector exposes the poller's latest telemetry snapshot as Prometheus metrics
type DTUCollector struct {
	poller *Poller
	logger *slog.Logger

	// Gauges - per inverter (grid side)
	sgsVoltage     *prometheus.Desc
	sgsFrequency   *prometheus.Desc
	sgsActivePower *prometheus.Desc
	sgsCurrentAmps *prometheus.Desc
	sgsPowerFactor *prometheus.Desc
	sgsTemperature *prometheus.Desc

	// Gauges - per panel port (DC side)
	pvVoltage      *prometheus.Desc
	pvCurrentAmps  *prometheus.Desc
	pvCurrentPower *prometheus.Desc
	pvEnergyDaily  *prometheus.Desc

	// Counters
	pvEnergyTotal   *prometheus.Desc
	pollErrorsTotal *prometheus.Desc

	// Status
	up                  *prometheus.Desc
	lastSuccessUnixtime *prometheus.Desc

	// Info metric
	dtuInfo *prometheus.Desc
}

// NewDTUCollector creates a collector over the given poller. If instance is
// non-empty it is attached to every metric as an instance_name const label.
func NewDTUCollector(poller *Poller, instance string, logger *slog.Logger) *DTUCollector {
	var constLabels prometheus.Labels
	if instance != "" {
		constLabels = prometheus.Labels{"instance_name": instance}
	}

	sgsLabels := []string{"serial_number"}
	pvLabels := []string{"serial_number", "port_number"}

	return &DTUCollector{
		poller: poller,
		logger: logger,

		sgsVoltage: prometheus.NewDesc(
			"hoymiles_sgs_voltage",
			"Grid voltage reported by the inverter (V)",
			sgsLabels, constLabels,
		),
		sgsFrequency: prometheus.NewDesc(
			"hoymiles_sgs_frequency",
			"Grid frequency reported by the inverter (Hz)",
			sgsLabels, constLabels,
		),
		sgsActivePower: prometheus.NewDesc(
			"hoymiles_sgs_active_power",
			"Active power fed into the grid (W)",
			sgsLabels, constLabels,
		),
		sgsCurrentAmps: prometheus.NewDesc(
			"hoymiles_sgs_current_amps",
			"Grid current reported by the inverter (A)",
			sgsLabels, constLabels,
		),
		sgsPowerFactor: prometheus.NewDesc(
			"hoymiles_sgs_power_factor",
			"Power factor reported by the inverter (%)",
			sgsLabels, constLabels,
		),
		sgsTemperature: prometheus.NewDesc(
			"hoymiles_sgs_temperature",
			"Inverter temperature (C)",
			sgsLabels, constLabels,
		),

		pvVoltage: prometheus.NewDesc(
			"hoymiles_pv_voltage",
			"Panel DC voltage (V)",
			pvLabels, constLabels,
		),
		pvCurrentAmps: prometheus.NewDesc(
			"hoymiles_pv_current_amps",
			"Panel DC current (A)",
			pvLabels, constLabels,
		),
		pvCurrentPower: prometheus.NewDesc(
			"hoymiles_pv_current_power",
			"Panel DC power (W)",
			pvLabels, constLabels,
		),
		pvEnergyDaily: prometheus.NewDesc(
			"hoymiles_pv_energy_daily",
			"Panel energy produced today, resets at midnight (Wh)",
			pvLabels, constLabels,
		),
		pvEnergyTotal: prometheus.NewDesc(
			"hoymiles_pv_energy_total",
			"Panel lifetime energy production (Wh)",
			pvLabels, constLabels,
		),

		pollErrorsTotal: prometheus.NewDesc(
			"hoymiles_poll_errors_total",
			"Total failed telemetry polls since process start",
			nil, constLabels,
		),

		up: prometheus.NewDesc(
			"hoymiles_up",
			"Whether the most recent telemetry poll succeeded (1 = success, 0 = serving stale data)",
			nil, constLabels,
		),
		lastSuccessUnixtime: prometheus.NewDesc(
			"hoymiles_last_success_timestamp_seconds",
			"Unix time of the last successful telemetry poll",
			nil, constLabels,
		),

		dtuInfo: prometheus.NewDesc(
			"hoymiles_dtu_info",
			"Hoymiles DTU information",
			[]string{"serial_number"}, constLabels,
		),
	}
}

// Describe implements prometheus.Collector
func (c *DTUCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sgsVoltage
	ch <- c.sgsFrequency
	ch <- c.sgsActivePower
	ch <- c.sgsCurrentAmps
	ch <- c.sgsPowerFactor
	ch <- c.sgsTemperature
	ch <- c.pvVoltage
	ch <- c.pvCurrentAmps
	ch <- c.pvCurrentPower
	ch <- c.pvEnergyDaily
	ch <- c.pvEnergyTotal
	ch <- c.pollErrorsTotal
	ch <- c.up
	ch <- c.lastSuccessUnixtime
	ch <- c.dtuInfo
}

// Collect implements prometheus.Collector. It reads the poller's snapshot
// and never triggers a fetch of its own, so scrapes stay cheap and
// decoupled from the poll interval. Before the first successful poll there
// is nothing to report and no metrics are emitted.
func (c *DTUCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot, lastSuccess, ok := c.poller.Snapshot()
	if !ok {
		c.logger.Debug("Scrape before first successful poll, nothing to report")
		return
	}

	upValue := 0.0
	if c.poller.Healthy() {
		upValue = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, upValue)
	ch <- prometheus.MustNewConstMetric(c.pollErrorsTotal, prometheus.CounterValue, c.poller.ErrorCount())
	ch <- prometheus.MustNewConstMetric(c.lastSuccessUnixtime, prometheus.GaugeValue, float64(lastSuccess.Unix()))

	if snapshot.DTUSerial != "" {
		ch <- prometheus.MustNewConstMetric(c.dtuInfo, prometheus.GaugeValue, 1.0, snapshot.DTUSerial)
	}

	for _, sgs := range snapshot.SGS {
		ch <- prometheus.MustNewConstMetric(c.sgsVoltage, prometheus.GaugeValue, sgs.Voltage, sgs.SerialNumber)
		ch <- prometheus.MustNewConstMetric(c.sgsFrequency, prometheus.GaugeValue, sgs.Frequency, sgs.SerialNumber)
		ch <- prometheus.MustNewConstMetric(c.sgsActivePower, prometheus.GaugeValue, sgs.ActivePower, sgs.SerialNumber)
		ch <- prometheus.MustNewConstMetric(c.sgsCurrentAmps, prometheus.GaugeValue, sgs.Current, sgs.SerialNumber)
		ch <- prometheus.MustNewConstMetric(c.sgsPowerFactor, prometheus.GaugeValue, sgs.PowerFactor, sgs.SerialNumber)
		ch <- prometheus.MustNewConstMetric(c.sgsTemperature, prometheus.GaugeValue, sgs.Temperature, sgs.SerialNumber)
	}

	for _, pv := range snapshot.PV {
		port := strconv.Itoa(pv.PortNumber)
		ch <- prometheus.MustNewConstMetric(c.pvVoltage, prometheus.GaugeValue, pv.Voltage, pv.SerialNumber, port)
		ch <- prometheus.MustNewConstMetric(c.pvCurrentAmps, prometheus.GaugeValue, pv.Current, pv.SerialNumber, port)
		ch <- prometheus.MustNewConstMetric(c.pvCurrentPower, prometheus.GaugeValue, pv.Power, pv.SerialNumber, port)
		ch <- prometheus.MustNewConstMetric(c.pvEnergyDaily, prometheus.GaugeValue, pv.EnergyDaily, pv.SerialNumber, port)
		ch <- prometheus.MustNewConstMetric(c.pvEnergyTotal, prometheus.CounterValue, pv.EnergyTotal, pv.SerialNumber, port)
	}

	c.logger.Debug("Prometheus scrape completed", "inverters", len(snapshot.SGS), "pv_ports", len(snapshot.PV))
}
