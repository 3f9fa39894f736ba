package meter

import "time"

// Zone 颜色/噪点/扭曲使用的五段分区，与叙事阶段相互独立
type Zone int

const (
	ZoneIdle     Zone = iota // 待机（低于待机阈值）
	ZoneCryo                 // [idle, 35]
	ZoneSurge                // (35, 55]
	ZoneActive               // (55, 75]
	ZoneCritical             // (75, 100]
)

// 分区上界（含）
const (
	CryoCeiling   = 35.0
	SurgeCeiling  = 55.0
	ActiveCeiling = 75.0
)

// CriticalLabelThreshold 超过该值状态标签显示 CRITICAL
const CriticalLabelThreshold = 90.0

func (z Zone) String() string {
	switch z {
	case ZoneIdle:
		return "idle"
	case ZoneCryo:
		return "cryo"
	case ZoneSurge:
		return "surge"
	case ZoneActive:
		return "active"
	case ZoneCritical:
		return "critical"
	}
	return "unknown"
}

// ZoneOf 计算分区以及区内插值因子（0-1）
// 待机区和平台区（Active）的因子只用于对称，调用方通常忽略
func ZoneOf(score, idleThreshold float64) (Zone, float64) {
	score = Clamp(score)
	switch {
	case score < idleThreshold:
		return ZoneIdle, 0
	case score <= CryoCeiling:
		if CryoCeiling <= idleThreshold {
			return ZoneCryo, 1
		}
		return ZoneCryo, (score - idleThreshold) / (CryoCeiling - idleThreshold)
	case score <= SurgeCeiling:
		return ZoneSurge, (score - CryoCeiling) / (SurgeCeiling - CryoCeiling)
	case score <= ActiveCeiling:
		return ZoneActive, (score - SurgeCeiling) / (ActiveCeiling - SurgeCeiling)
	default:
		return ZoneCritical, (score - ActiveCeiling) / (MaxScore - ActiveCeiling)
	}
}

// 噪点透明度
const (
	NoiseBaseline     = 0.03
	NoiseSurgeStart   = 0.08
	NoiseSurgeRange   = 0.05
	NoiseActiveFlat   = 0.05
	NoiseCriticalBase = 0.05
	NoiseCriticalSpan = 0.05
)

// NoiseOpacity 全屏 CRT 噪点透明度
func NoiseOpacity(score, idleThreshold float64) float64 {
	zone, f := ZoneOf(score, idleThreshold)
	switch zone {
	case ZoneSurge:
		return NoiseSurgeStart + f*NoiseSurgeRange
	case ZoneActive:
		return NoiseActiveFlat
	case ZoneCritical:
		return NoiseCriticalBase + f*NoiseCriticalSpan
	default:
		return NoiseBaseline
	}
}

// MaxDistortion 扭曲强度上限（位移贴图 scale）
const MaxDistortion = 4.0

// DistortionScale 热浪扭曲强度：75 以下为 0，75→100 线性升到 4
func DistortionScale(score float64) float64 {
	score = Clamp(score)
	if score <= ActiveCeiling {
		return 0
	}
	return (score - ActiveCeiling) / (MaxScore - ActiveCeiling) * MaxDistortion
}

// 旋转周期（毫秒）
const (
	RotationSlowestMs = 15000.0
	RotationSpanMs    = 14200.0
)

// RotationPeriod 外圈虚线旋转一周的时长：0 分 15s，100 分 0.8s
func RotationPeriod(score float64) time.Duration {
	score = Clamp(score)
	ms := RotationSlowestMs - score/MaxScore*RotationSpanMs
	return time.Duration(ms * float64(time.Millisecond))
}

// StatusLabel 分区状态标签
func StatusLabel(score, idleThreshold float64) string {
	zone, _ := ZoneOf(score, idleThreshold)
	switch zone {
	case ZoneIdle:
		return "IDLE"
	case ZoneCryo, ZoneSurge:
		return "INITIATING"
	case ZoneActive:
		return "ACTIVE"
	default:
		if Clamp(score) > CriticalLabelThreshold {
			return "CRITICAL"
		}
		return "ACTIVE"
	}
}
