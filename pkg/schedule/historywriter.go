package schedule

// WriteHistory folds a solved schedule's new period into the history
// store, keyed by periodName (or the default "<start>_to_<end>" name
// if periodName is empty). Per §7, a save failure is returned to the
// caller to log but must not invalidate an already-produced schedule.
func WriteHistory(store HistoryStore, m *Model, vars *VariableSet, periodName string) error {
	periods, err := store.Load()
	if err != nil {
		return err
	}
	if periodName == "" {
		periodName = DefaultPeriodName(m.Cal)
	}
	periods[periodName] = NewHorizonPeriod(m, vars)
	return store.Save(periods)
}
