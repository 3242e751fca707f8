// Package bpm provides a small process engine running the holidayRequest
// workflow: employees file requests, managers approve or reject them through
// a group task queue, and every visited node is timed for reporting.
//
// End-users interact with the engine via the Service facade:
//
//	srv, _ := bpm.New()
//	rt := srv.Runtime()
//	id, _ := rt.Start(ctx, holiday.Key, holiday.Variables("Alice", 5, "trip"))
//	tasks, _ := rt.TasksForGroup(ctx, holiday.GroupManagers)
//	_ = rt.CompleteTask(ctx, tasks[0].ID, map[string]interface{}{"approved": true})
//	_ = rt.PrintReport(ctx, os.Stdout)
package bpm
