// Package dashboard derives role-scoped summary view models from entity
// collections. Every function here is pure: it takes a snapshot of the
// collections plus an explicit reference time and mutates nothing.
package dashboard

import (
	"sort"
	"time"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
)

// Snapshot is a read-only view of the entity collections as returned by
// the persistence layer. Aggregation never mutates it.
type Snapshot struct {
	Users    []domain.User
	Workouts []domain.Workout
	Plans    []domain.WorkoutPlan
	Groups   []domain.TraineeGroup
	Progress []domain.WorkoutProgress
}

// DayBucket aggregates the progress records of one calendar day.
type DayBucket struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Minutes   int       `json:"minutes"`
	Calories  int       `json:"calories"`
}

// TrailingDayBuckets produces n buckets, one per calendar day from
// now-(n-1) days to now inclusive, in chronological order. A record
// lands in a bucket when its completion date falls on that calendar day
// in now's location; this is day equality, not a ±24h window. Missing
// calorie values count as 0.
func TrailingDayBuckets(progress []domain.WorkoutProgress, n int, now time.Time) []DayBucket {
	if n <= 0 {
		return nil
	}

	buckets := make([]DayBucket, n)
	for i := 0; i < n; i++ {
		day := now.AddDate(0, 0, i-(n-1))
		buckets[i] = DayBucket{Date: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())}
	}

	for _, p := range progress {
		d := p.CompletedDate.In(now.Location())
		for i := range buckets {
			b := buckets[i].Date
			if d.Year() == b.Year() && d.Month() == b.Month() && d.Day() == b.Day() {
				buckets[i].Completed++
				buckets[i].Minutes += p.Duration
				buckets[i].Calories += p.Calories()
				break
			}
		}
	}
	return buckets
}

// ActivityItem is one entry of a trainer's recent activity feed.
type ActivityItem struct {
	TraineeID   string    `json:"traineeId"`
	TraineeName string    `json:"traineeName"`
	WorkoutID   string    `json:"workoutId"`
	WorkoutName string    `json:"workoutName"`
	PlanID      string    `json:"planId"`
	Completed   time.Time `json:"completedDate"`
	Duration    int       `json:"duration"`
	Calories    int       `json:"calories"`
}

// PlanSummary is one owned plan's roster size on the trainer dashboard.
type PlanSummary struct {
	PlanID       string `json:"planId"`
	Name         string `json:"name"`
	TraineeCount int    `json:"traineeCount"`
}

// TrainerOverview is the trainer dashboard view model.
type TrainerOverview struct {
	TrainerID        string         `json:"trainerId"`
	WorkoutCount     int            `json:"workoutCount"`
	WorkoutsThisWeek int            `json:"workoutsThisWeek"`
	PlanCount        int            `json:"planCount"`
	GroupCount       int            `json:"groupCount"`
	TraineeIDs       []string       `json:"traineeIds"`
	Plans            []PlanSummary  `json:"plans"`
	Completions      []DayBucket    `json:"completions"` // trailing 7 days
	RecentActivity   []ActivityItem `json:"recentActivity"`
}

const (
	activityFeedLimit    = 5
	trailingWindowDays   = 7
	dashboardUpcomingMax = 3
	scheduleUpcomingMax  = 5
)

// BuildTrainerOverview computes the trainer dashboard for one trainer.
// Empty collections yield a zeroed view model, never an error.
func BuildTrainerOverview(snap Snapshot, trainerID string, now time.Time) TrainerOverview {
	ov := TrainerOverview{TrainerID: trainerID}

	ownedPlans := make(map[string]bool)
	for _, p := range snap.Plans {
		if p.TrainerID == trainerID {
			ownedPlans[p.ID] = true
			ov.PlanCount++
			ov.Plans = append(ov.Plans, PlanSummary{
				PlanID:       p.ID,
				Name:         p.Name,
				TraineeCount: len(p.Trainees),
			})
		}
	}

	weekAgo := now.AddDate(0, 0, -trailingWindowDays)
	for _, w := range snap.Workouts {
		if w.CreatedBy == trainerID {
			ov.WorkoutCount++
			if w.CreatedAt.After(weekAgo) {
				ov.WorkoutsThisWeek++
			}
		}
	}

	// Trainee set: union of group memberships and plan assignments,
	// duplicates removed, order stable.
	seen := make(map[string]bool)
	for _, g := range snap.Groups {
		if g.TrainerID != trainerID {
			continue
		}
		ov.GroupCount++
		for _, id := range g.Trainees {
			if !seen[id] {
				seen[id] = true
				ov.TraineeIDs = append(ov.TraineeIDs, id)
			}
		}
	}
	for _, p := range snap.Plans {
		if p.TrainerID != trainerID {
			continue
		}
		for _, id := range p.Trainees {
			if !seen[id] {
				seen[id] = true
				ov.TraineeIDs = append(ov.TraineeIDs, id)
			}
		}
	}

	var traineeProgress []domain.WorkoutProgress
	for _, p := range snap.Progress {
		if seen[p.UserID] {
			traineeProgress = append(traineeProgress, p)
		}
	}
	ov.Completions = TrailingDayBuckets(traineeProgress, trailingWindowDays, now)

	ov.RecentActivity = recentActivity(snap, ownedPlans)
	return ov
}

// recentActivity collects progress records belonging to the trainer's
// plans, newest first, truncated to the feed limit.
func recentActivity(snap Snapshot, ownedPlans map[string]bool) []ActivityItem {
	users := make(map[string]domain.User, len(snap.Users))
	for _, u := range snap.Users {
		users[u.ID] = u
	}
	workouts := make(map[string]domain.Workout, len(snap.Workouts))
	for _, w := range snap.Workouts {
		workouts[w.ID] = w
	}

	var items []ActivityItem
	for _, p := range snap.Progress {
		if !ownedPlans[p.PlanID] {
			continue
		}
		items = append(items, ActivityItem{
			TraineeID:   p.UserID,
			TraineeName: users[p.UserID].Name,
			WorkoutID:   p.WorkoutID,
			WorkoutName: workouts[p.WorkoutID].Name,
			PlanID:      p.PlanID,
			Completed:   p.CompletedDate,
			Duration:    p.Duration,
			Calories:    p.Calories(),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Completed.After(items[j].Completed) })
	if len(items) > activityFeedLimit {
		items = items[:activityFeedLimit]
	}
	return items
}

// UpcomingWorkout is a scheduled, not yet completed workout from one of
// a trainee's assigned plans.
type UpcomingWorkout struct {
	PlanID        string            `json:"planId"`
	PlanName      string            `json:"planName"`
	WorkoutID     string            `json:"workoutId"`
	WorkoutName   string            `json:"workoutName"`
	ScheduledDate time.Time         `json:"scheduledDate"`
	Duration      int               `json:"duration"`
	Difficulty    domain.Difficulty `json:"difficulty,omitempty"`
}

// Upcoming lists a trainee's incomplete plan workouts scheduled strictly
// after now, ascending by scheduled date, truncated to limit. Completed
// entries never appear regardless of their date.
func Upcoming(snap Snapshot, traineeID string, now time.Time, limit int) []UpcomingWorkout {
	workouts := make(map[string]domain.Workout, len(snap.Workouts))
	for _, w := range snap.Workouts {
		workouts[w.ID] = w
	}

	var out []UpcomingWorkout
	for _, plan := range snap.Plans {
		if !plan.HasTrainee(traineeID) {
			continue
		}
		for _, pw := range plan.Workouts {
			if pw.Completed || !pw.ScheduledDate.After(now) {
				continue
			}
			w := workouts[pw.WorkoutID]
			out = append(out, UpcomingWorkout{
				PlanID:        plan.ID,
				PlanName:      plan.Name,
				WorkoutID:     pw.WorkoutID,
				WorkoutName:   w.Name,
				ScheduledDate: pw.ScheduledDate,
				Duration:      w.Duration,
				Difficulty:    w.Difficulty,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ProgressTotals summarizes a trainee's whole progress history.
type ProgressTotals struct {
	WorkoutsCompleted int `json:"workoutsCompleted"`
	TotalMinutes      int `json:"totalMinutes"`
	TotalCalories     int `json:"totalCalories"`
	// AvgHeartRate is the mean of the average heart rate over records
	// that carry one, 0 when none do.
	AvgHeartRate int `json:"avgHeartRate"`
}

// Totals computes progress totals over the given records. Records
// without calories contribute 0; records without a heart rate are left
// out of the average's denominator.
func Totals(progress []domain.WorkoutProgress) ProgressTotals {
	var t ProgressTotals
	hrSum, hrCount := 0, 0
	for _, p := range progress {
		t.WorkoutsCompleted++
		t.TotalMinutes += p.Duration
		t.TotalCalories += p.Calories()
		if avg, ok := p.AverageHeartRate(); ok {
			hrSum += avg
			hrCount++
		}
	}
	if hrCount > 0 {
		t.AvgHeartRate = int(float64(hrSum)/float64(hrCount) + 0.5)
	}
	return t
}

// TraineeOverview is the trainee dashboard view model.
type TraineeOverview struct {
	TraineeID  string            `json:"traineeId"`
	PlanCount  int               `json:"planCount"`
	GroupCount int               `json:"groupCount"`
	Totals     ProgressTotals    `json:"totals"`
	Upcoming   []UpcomingWorkout `json:"upcomingWorkouts"`
	Activity   []DayBucket       `json:"activity"` // trailing 7 days
}

// BuildTraineeOverview computes the trainee dashboard for one trainee.
// Empty collections yield a zeroed view model, never an error.
func BuildTraineeOverview(snap Snapshot, traineeID string, now time.Time) TraineeOverview {
	ov := TraineeOverview{TraineeID: traineeID}

	for _, g := range snap.Groups {
		if g.HasTrainee(traineeID) {
			ov.GroupCount++
		}
	}
	for _, p := range snap.Plans {
		if p.HasTrainee(traineeID) {
			ov.PlanCount++
		}
	}

	var own []domain.WorkoutProgress
	for _, p := range snap.Progress {
		if p.UserID == traineeID {
			own = append(own, p)
		}
	}
	ov.Totals = Totals(own)
	ov.Upcoming = Upcoming(snap, traineeID, now, dashboardUpcomingMax)
	ov.Activity = TrailingDayBuckets(own, trailingWindowDays, now)
	return ov
}

// ScheduledWorkout is one plan workout placed on the weekly calendar.
// Unlike UpcomingWorkout it keeps completed and past entries, with the
// completion flag carried through.
type ScheduledWorkout struct {
	PlanID        string    `json:"planId"`
	PlanName      string    `json:"planName"`
	WorkoutID     string    `json:"workoutId"`
	WorkoutName   string    `json:"workoutName"`
	ScheduledDate time.Time `json:"scheduledDate"`
	Completed     bool      `json:"completed"`
}

// ScheduleDay groups one calendar day's scheduled workouts.
type ScheduleDay struct {
	Date     time.Time          `json:"date"`
	Workouts []ScheduledWorkout `json:"workouts"`
}

// ScheduleView is the trainee schedule page view model: the next few
// workouts plus the current week laid out day by day.
type ScheduleView struct {
	Upcoming []UpcomingWorkout `json:"upcomingWorkouts"`
	Week     []ScheduleDay     `json:"week"`
}

// WeeklySchedule lays the trainee's scheduled plan workouts onto the
// 7 calendar days of now's week (starting Sunday). Every scheduled
// entry whose date falls on a day of the week appears there, completed
// or not; days without workouts stay present with an empty list.
func WeeklySchedule(snap Snapshot, traineeID string, now time.Time) []ScheduleDay {
	start := now.AddDate(0, 0, -int(now.Weekday()))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())

	workouts := make(map[string]domain.Workout, len(snap.Workouts))
	for _, w := range snap.Workouts {
		workouts[w.ID] = w
	}

	days := make([]ScheduleDay, trailingWindowDays)
	for i := range days {
		days[i] = ScheduleDay{Date: start.AddDate(0, 0, i)}
	}

	for _, plan := range snap.Plans {
		if !plan.HasTrainee(traineeID) {
			continue
		}
		for _, pw := range plan.Workouts {
			d := pw.ScheduledDate.In(now.Location())
			for i := range days {
				b := days[i].Date
				if d.Year() == b.Year() && d.Month() == b.Month() && d.Day() == b.Day() {
					days[i].Workouts = append(days[i].Workouts, ScheduledWorkout{
						PlanID:        plan.ID,
						PlanName:      plan.Name,
						WorkoutID:     pw.WorkoutID,
						WorkoutName:   workouts[pw.WorkoutID].Name,
						ScheduledDate: pw.ScheduledDate,
						Completed:     pw.Completed,
					})
					break
				}
			}
		}
	}
	for i := range days {
		sort.SliceStable(days[i].Workouts, func(a, b int) bool {
			return days[i].Workouts[a].ScheduledDate.Before(days[i].Workouts[b].ScheduledDate)
		})
	}
	return days
}

// Schedule builds the schedule page view model: the upcoming list
// (wider than the dashboard's) and the week grid.
func Schedule(snap Snapshot, traineeID string, now time.Time) ScheduleView {
	return ScheduleView{
		Upcoming: Upcoming(snap, traineeID, now, scheduleUpcomingMax),
		Week:     WeeklySchedule(snap, traineeID, now),
	}
}
