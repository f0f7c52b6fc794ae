package growatt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Endpoint methods are thin: each one just supplies a path, form fields and
// an unwrap strategy to the pipeline in request.go. The (path, form, unwrap)
// triples mirror the portal's web UI traffic.

// GetPlants returns the plants visible to the account.
func (c *Client) GetPlants(ctx context.Context) ([]Plant, error) {
	raw, err := c.call(ctx, http.MethodPost, "/index/getPlantListTitle", nil, arrayResult())
	if err != nil {
		return nil, err
	}
	return decode[[]Plant](raw)
}

// GetPlant returns the detail record for one plant.
func (c *Client) GetPlant(ctx context.Context, plantID string) (PlantData, error) {
	raw, err := c.call(ctx, http.MethodPost, "/panel/getPlantData?"+plantQuery(plantID), nil, objectResult())
	if err != nil {
		return PlantData{}, err
	}
	return decode[PlantData](raw)
}

// GetMixIDs lists the mix (hybrid inverter) devices of a plant.
func (c *Client) GetMixIDs(ctx context.Context, plantID string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, "/panel/getDevicesByPlant?"+plantQuery(plantID), nil, objectResult("obj", "mix"))
}

// GetMixTotal returns lifetime totals for a mix device.
func (c *Client) GetMixTotal(ctx context.Context, plantID, mixSN string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("mixSn", mixSN)
	return c.call(ctx, http.MethodPost, "/panel/mix/getMIXTotalData?"+plantQuery(plantID), form, objectResult())
}

// GetMixStatus returns the live status of a mix device.
func (c *Client) GetMixStatus(ctx context.Context, plantID, mixSN string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("mixSn", mixSN)
	return c.call(ctx, http.MethodPost, "/panel/mix/getMIXStatusData?"+plantQuery(plantID), form, objectResult())
}

// GetEnergyStatsDaily returns the day chart for date (YYYY-MM-DD).
func (c *Client) GetEnergyStatsDaily(ctx context.Context, date, plantID, mixSN string) (json.RawMessage, error) {
	return c.energyChart(ctx, "/panel/mix/getMIXEnergyDayChart", "date", date, plantID, mixSN)
}

// GetEnergyStatsMonthly returns the month chart for date (YYYY-MM).
func (c *Client) GetEnergyStatsMonthly(ctx context.Context, date, plantID, mixSN string) (json.RawMessage, error) {
	return c.energyChart(ctx, "/panel/mix/getMIXEnergyMonthChart", "date", date, plantID, mixSN)
}

// GetEnergyStatsYearly returns the year chart.
func (c *Client) GetEnergyStatsYearly(ctx context.Context, year, plantID, mixSN string) (json.RawMessage, error) {
	return c.energyChart(ctx, "/panel/mix/getMIXEnergyYearChart", "year", year, plantID, mixSN)
}

// GetEnergyStatsTotal returns the lifetime chart.
func (c *Client) GetEnergyStatsTotal(ctx context.Context, year, plantID, mixSN string) (json.RawMessage, error) {
	return c.energyChart(ctx, "/panel/mix/getMIXEnergyTotalChart", "year", year, plantID, mixSN)
}

func (c *Client) energyChart(ctx context.Context, path, dateField, date, plantID, mixSN string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set(dateField, date)
	form.Set("plantId", plantID)
	form.Set("mixSn", mixSN)
	return c.call(ctx, http.MethodPost, path, form, bareResult())
}

// GetWeeklyBatteryStats returns the battery chart for the last week.
func (c *Client) GetWeeklyBatteryStats(ctx context.Context, plantID, mixSN string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("plantId", plantID)
	form.Set("mixSn", mixSN)
	return c.call(ctx, http.MethodPost, "/panel/mix/getMIXBatChart", form, bareResult())
}

// SetMixACDischargeTimeNow pushes the current wall-clock time to a mix
// device, which the portal uses to (re)sync its discharge schedule.
func (c *Client) SetMixACDischargeTimeNow(ctx context.Context, mixSN string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("action", "mixSet")
	form.Set("serialNum", mixSN)
	form.Set("type", "pf_sys_year")
	form.Set("param1", time.Now().Format("2006-01-02 15:04:05"))
	return c.call(ctx, http.MethodPost, "/tcpSet.do", form, bareResult())
}

// GetDeviceList returns the MAX inverters of a plant.
func (c *Client) GetDeviceList(ctx context.Context, plantID string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("plantId", plantID)
	form.Set("currPage", "1")
	return c.call(ctx, http.MethodPost, "/device/getMAXList", form, bareResult())
}

// GetWeather returns the environment sensor list of a plant.
func (c *Client) GetWeather(ctx context.Context, plantID string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("plantId", plantID)
	form.Set("currPage", "1")
	return c.call(ctx, http.MethodPost, "/device/getEnvList", form, bareResult())
}

// GetDevicesByPlantList returns one page of the device list; page defaults
// to 1 when zero or negative.
func (c *Client) GetDevicesByPlantList(ctx context.Context, plantID string, page int) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	form := url.Values{}
	form.Set("plantId", plantID)
	form.Set("currPage", strconv.Itoa(page))
	return c.call(ctx, http.MethodPost, "/panel/getDevicesByPlantList", form, bareResult())
}

// GetFaultLogs returns one page of a plant's fault log. An empty date means
// today. plantID must be set; the portal silently returns garbage otherwise.
func (c *Client) GetFaultLogs(ctx context.Context, plantID, date, deviceSN string, pageNum, deviceFlag, faultType int) (json.RawMessage, error) {
	if plantID == "" {
		return nil, &InvalidResponseError{Message: "plant ID must be provided"}
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	form := url.Values{}
	form.Set("deviceSn", deviceSN)
	form.Set("date", date)
	form.Set("plantId", plantID)
	form.Set("toPageNum", strconv.Itoa(pageNum))
	form.Set("type", strconv.Itoa(faultType))
	form.Set("deviceFlag", strconv.Itoa(deviceFlag))

	header := http.Header{}
	header.Set("X-Requested-With", "XMLHttpRequest")
	header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	return c.callHeaders(ctx, http.MethodPost, "/log/getNewPlantFaultLog", form, header, bareResult())
}

// GetPlantFaultLogs is a legacy alias for GetFaultLogs.
func (c *Client) GetPlantFaultLogs(ctx context.Context, plantID, date, deviceSN string, pageNum, deviceFlag, faultType int) (json.RawMessage, error) {
	return c.GetFaultLogs(ctx, plantID, date, deviceSN, pageNum, deviceFlag, faultType)
}

func plantQuery(plantID string) string {
	q := url.Values{}
	q.Set("plantId", plantID)
	return q.Encode()
}
