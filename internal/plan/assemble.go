package plan

import (
	"github.com/yungbote/vitalplan-backend/internal/types"
)

// BuildActionPlan serializes a finished schedule into the wire-format
// envelope. Internal scheduled ids are assigned sequentially; child entries
// referencing a parent's external unique id are re-pointed at the parent's
// scheduled id.
func BuildActionPlan(in Input, entries []*Entry, planUniqueID string) types.ActionPlanDocument {
	scheduledByUniqueID := map[int]int{}
	for i, entry := range entries {
		if entry.IsParent {
			scheduledByUniqueID[entry.Routine.UniqueID] = i + 1
		}
	}

	routines := make([]types.ScheduledRoutineEntry, 0, len(entries))
	for i, entry := range entries {
		wire := types.ScheduledRoutineEntry{
			ScheduledID:        i + 1,
			Pillar:             entry.Routine.Pillar,
			RoutineID:          entry.Routine.ID,
			RoutineUniqueID:    entry.Routine.UniqueID,
			Name:               entry.Routine.Name,
			DurationCalculated: int(entry.Duration),
			Amount:             entry.Routine.Amount,
			Unit:               entry.Routine.Unit,
			Sets:               entry.Routine.Sets,
			ScheduleDays:       append([]int(nil), entry.Days...),
			ScheduleWeeks:      append([]int(nil), entry.Weeks...),
			ScheduleCategory:   entry.Category,
			Expiration:         entry.Expiration,
		}
		if entry.ParentUniqueID != 0 {
			if scheduledID, ok := scheduledByUniqueID[entry.ParentUniqueID]; ok {
				wire.ParentRoutineID = scheduledID
			} else {
				wire.ParentRoutineID = entry.ParentUniqueID
			}
		}
		if entry.IsParent {
			wire.Goal = &types.Goal{Value: entry.Duration, Unit: "min"}
		}
		routines = append(routines, wire)
	}

	return types.ActionPlanDocument{
		Data: types.ActionPlanData{
			ActionPlanUniqueID:         planUniqueID,
			PreviousActionPlanUniqueID: in.PreviousPlanUniqueID,
			AccountID:                  in.AccountID,
			PeriodInDays:               types.PlanPeriodDays,
			Gender:                     in.Gender,
			TotalDailyTimeInMins:       in.TotalDailyTimeInMins,
			Routines:                   routines,
		},
	}
}
