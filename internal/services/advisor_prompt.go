package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripmate/internal/models/trip_models"
)

// tripAdviseInstruction is the fixed role + planning-constraint block of
// the few-shot prompt: 1-5 stops per day, time-of-day suitability
// ordering, weather-conditional selection, short hops between adjacent
// stops, JSON-only output.
const tripAdviseInstruction = `你具有丰富的旅行经验，了解各地著名或小众旅游景点，擅长规划旅游行程。你可以帮助我规划旅行行程、提供各种类型的旅游目的地建议，包括著名景点和小众独特的去处，并且可以根据我的偏好、预算、时间以及特定的兴趣点（如历史文化探索、自然风光欣赏、美食之旅等）来定制旅行方案。制定旅行攻略应遵守的原则包括：每天至少安排1个景点，至多安排5个景点；每天游览景点的顺序要考虑景点特点，例如，适合看日出的景点要安排在早上，适合徒步游览的景点尽量安排在上午，适合看日落的景点要安排在傍晚，适合看夜景的景点应当安排在晚上；安排景点时要根据当天的天气状况，选择适合晴朗天气游览的景点和适合雨雪天气游览的景点；安排在相邻时间段游览的景点之间的距离不要太远。你的任务是根据旅游天数、目的地和天气等出行信息制定旅游攻略，用合法的JSON格式返回结果，不要添加注释。`

// tripAdviseExample is one worked input/output pair. The advise is a
// complete itinerary in the output schema; it anchors the JSON shape and
// the planning heuristics for the model.
type tripAdviseExample struct {
	City     string
	Duration string
	Weathers []trip_models.ForecastDay
	Advise   trip_models.Itinerary
}

var tripAdviseExamples = []tripAdviseExample{
	{
		City:     "绍兴",
		Duration: "2天",
		Weathers: []trip_models.ForecastDay{
			{DayWeather: "晴", NightWeather: "多云"},
			{DayWeather: "阴转小雨", NightWeather: "晴"},
		},
		Advise: trip_models.Itinerary{
			City: "绍兴",
			Days: []trip_models.ItineraryDay{
				{
					Date:         "第1天",
					DayWeather:   "晴",
					NightWeather: "多云",
					Schedule: []trip_models.ScheduleEntry{
						{Time: "上午", Location: "鲁迅故里", Description: "游览鲁迅故居、鲁迅纪念馆、百草园和三味书屋。这些景点较为集中，适合一早参观，了解历史文化，并且在清晨时分体验江南水乡的宁静。"},
						{Time: "中午", Location: "咸亨酒店", Description: "午餐可以在鲁迅故居附近的咸亨酒店享用，品尝绍兴地方特色菜肴，如臭豆腐、茴香豆和绍兴黄酒等。"},
						{Time: "下午", Location: "东湖景区", Description: "午后阳光明媚，适宜在户外活动，东湖是理想的游览地点，可以乘乌篷船欣赏湖光山色。"},
						{Time: "傍晚", Location: "会稽山风景度假区", Description: "若时间允许，可在傍晚前前往会稽山，虽然当天不适合看日落，但可以在多云的傍晚感受山间静谧氛围。"},
						{Time: "晚上", Location: "安昌古镇", Description: "晚上入住安昌古镇内客栈，感受古镇夜景，体验当地生活气息，并为第二天早上游览古镇预留充足时间。"},
					},
				},
				{
					Date:         "第2天",
					DayWeather:   "阴转小雨",
					NightWeather: "晴",
					Schedule: []trip_models.ScheduleEntry{
						{Time: "上午", Location: "安昌古镇", Description: "清晨游览古镇，欣赏雨后朦胧的江南水乡风貌，享受当地特色的早餐。"},
						{Time: "中午", Location: "兰亭景区", Description: "由于预计白天有小雨，选择室内或半开放型的兰亭景区是个不错的选择，可以参观王羲之书法文化，避雨同时沉浸于艺术气息中。"},
						{Time: "下午", Location: "大禹陵", Description: "如果雨势不大，可以考虑游览大禹陵，雨中的自然景观别有一番风味，带上雨具爬山或在景区内漫步，呼吸清新空气。"},
						{Time: "傍晚", Location: "书圣故里", Description: "傍晚时分，若天气好转，可以去书圣故里，观赏文笔塔并登高远眺，体验绍兴城市风光。"},
						{Time: "晚上", Location: "绍兴古城", Description: "鉴于晚上天气预报转晴，可以选择夜游绍兴古城，逛逛历史街区，体验古城墙、古桥及河两岸的夜景灯光秀。"},
					},
				},
			},
		},
	},
	{
		City:     "北京",
		Duration: "2天",
		Weathers: []trip_models.ForecastDay{
			{DayWeather: "大雨", NightWeather: "多云"},
			{DayWeather: "小雨", NightWeather: "晴"},
		},
		Advise: trip_models.Itinerary{
			City: "北京",
			Days: []trip_models.ItineraryDay{
				{
					Date:         "第1天",
					DayWeather:   "大雨",
					NightWeather: "多云",
					Schedule: []trip_models.ScheduleEntry{
						{Time: "上午", Location: "国家博物馆", Description: "鉴于全天大部分时间有雨，首日上午安排参观中国国家博物馆，这里丰富的馆藏和室内环境适合在雨天游览。"},
						{Time: "中午", Location: "王府井步行街", Description: "在附近著名的王府井步行街享用午餐，并可在此购买一些北京特色小吃或纪念品。"},
						{Time: "下午", Location: "故宫博物院", Description: "尽管当天有雨，但故宫内部游览不受影响。由于下雨可能减少室外游客数量，此时游览故宫可以避开部分人流，体验更佳。请提前通过网络预订门票，避免现场排队。"},
						{Time: "傍晚", Location: "南锣鼓巷", Description: "若傍晚时分雨势减弱至多云，可以选择前往南锣鼓巷或后海地区，体验老北京胡同文化，同时可以在酒吧、茶馆或餐厅中稍作休息，等待夜幕降临。"},
					},
				},
				{
					Date:         "第2天",
					DayWeather:   "小雨",
					NightWeather: "晴",
					Schedule: []trip_models.ScheduleEntry{
						{Time: "上午", Location: "798艺术区", Description: "上午安排去798艺术区，这里的室内艺术展览和创意店铺可以提供充足的避雨空间，且小雨天气下的艺术区别有一番韵味。"},
						{Time: "中午", Location: "三里屯商圈", Description: "前往三里屯商圈，在那里找一家餐厅享用午餐，同时享受现代都市的繁华氛围。"},
						{Time: "下午", Location: "颐和园", Description: "根据天气预报，下午可能会有小雨，可以选择在颐和园内乘坐游船观赏昆明湖及佛香阁等主要景观，即便下雨也能在长廊等遮蔽处欣赏园林美景。"},
						{Time: "晚上", Location: "奥林匹克公园", Description: "考虑到晚上的天气会转晴，可在傍晚时分前往奥林匹克公园，参观鸟巢和水立方的夜景。如果时间允许，还可以在晴朗的夜晚观赏一场灯光秀表演。"},
					},
				},
			},
		},
	},
}

// renderTripBrief renders destination, duration and the per-day weather
// line as the structured text block both the examples and the live brief
// use inside the prompt.
func renderTripBrief(city, duration string, weathers []trip_models.ForecastDay) string {
	var b strings.Builder
	b.WriteString("目的地:" + city)
	b.WriteString("\n旅游天数:" + duration)
	b.WriteString("\n天气情况:")
	for i, w := range weathers {
		fmt.Fprintf(&b, "第%d天白天%s, 晚上%s。", i+1, w.DayWeather, w.NightWeather)
	}
	return b.String()
}

// buildTripAdvisePrompt assembles the deterministic few-shot prompt:
// fixed instruction, numbered worked examples, then the current brief.
func buildTripAdvisePrompt(brief *trip_models.TripBrief) string {
	var b strings.Builder
	b.WriteString(tripAdviseInstruction)
	if len(tripAdviseExamples) > 0 {
		b.WriteString("\n以下是根据出行信息制定旅游攻略的示例。")
		for i, ex := range tripAdviseExamples {
			advise, _ := json.Marshal(ex.Advise)
			fmt.Fprintf(&b, "\n示例%d:", i+1)
			fmt.Fprintf(&b, "\n出行信息如下:\n%s\n旅游攻略如下:\n%s",
				renderTripBrief(ex.City, ex.Duration, ex.Weathers), advise)
		}
	}
	b.WriteString("\n请你根据以下出行信息制定旅游攻略:")
	b.WriteString("\n" + renderTripBrief(brief.City, brief.Duration, brief.Weathers))
	return b.String()
}
