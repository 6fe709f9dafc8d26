package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// The community launched on this date; the daily report counts days of
// service from it.
var serviceEpoch = time.Date(2023, time.July, 31, 0, 0, 0, 0, time.UTC)

// SendDailyReport posts the daily status message to the activity chat.
func (t *Tgbot) SendDailyReport() error {
	days := int(time.Now().UTC().Sub(serviceEpoch).Hours()/24) + 1

	cpuUsage := 0.0
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		cpuUsage = percents[0]
	}

	memUsage := 0.0
	if memInfo, err := mem.VirtualMemory(); err == nil {
		memUsage = memInfo.UsedPercent
	}

	uptime := "unknown"
	if secs, err := host.Uptime(); err == nil {
		uptime = (time.Duration(secs) * time.Second).String()
	}

	msg := t.I18nBot("bot.messages.dailyReport",
		"Days=="+strconv.Itoa(days),
		"Uptime=="+uptime,
		"Cpu=="+fmt.Sprintf("%.1f", cpuUsage),
		"Mem=="+fmt.Sprintf("%.1f", memUsage),
	)
	return t.SendMessage(t.cfg.ActivityChatID, msg)
}
