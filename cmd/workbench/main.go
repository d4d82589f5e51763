// Command workbench drives the lesson plan workflow against a running API
// from the terminal: list plans, walk them through review, and maintain the
// module and lesson tree of a grade.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/noah-isme/lessonplan-api/internal/apiclient"
	"github.com/noah-isme/lessonplan-api/internal/lifecycle"
	"github.com/noah-isme/lessonplan-api/internal/listview"
	"github.com/noah-isme/lessonplan-api/internal/models"
	"github.com/noah-isme/lessonplan-api/internal/service"
	"github.com/noah-isme/lessonplan-api/internal/treecache"
	"github.com/noah-isme/lessonplan-api/internal/workflow"
	"github.com/noah-isme/lessonplan-api/pkg/config"
	"github.com/noah-isme/lessonplan-api/pkg/logger"
)

type options struct {
	role       string
	gradeID    int64
	gradeLabel string
	status     string
	moduleID   int64
	search     string
	semester   int
	page       int
	reason     string
	follow     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.role, "role", "teacher", "acting role: teacher or manager")
	flag.Int64Var(&opts.gradeID, "grade", 0, "grade id")
	flag.StringVar(&opts.gradeLabel, "grade-label", "", `grade label such as "Lớp 5", used when -grade is unset`)
	flag.StringVar(&opts.status, "status", "draft", "status list: draft, pending, approved or rejected")
	flag.Int64Var(&opts.moduleID, "module", 0, "module filter")
	flag.StringVar(&opts.search, "search", "", "title search")
	flag.IntVar(&opts.semester, "semester", 0, "semester tab for module options")
	flag.IntVar(&opts.page, "page", 1, "page number")
	flag.StringVar(&opts.reason, "reason", "", "rejection reason")
	flag.BoolVar(&opts.follow, "follow", false, "follow the redirect after a transition")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr, opts, args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `usage: workbench [flags] <command> [id]

commands:
  plans                 list lesson plans for the current filter
  show <planId>         print one lesson plan
  submit <planId>       send a draft for review
  approve <planId>      approve a pending plan
  reject <planId>       reject a pending plan (requires -reason)
  draft <planId>        return a rejected plan to draft
  delete <planId>       delete a rejected plan
  modules               list the grade's modules
  lessons <moduleId>    list a module's lessons
  module-delete <id>    delete a module
  lesson-toggle <moduleId> <lessonId>
                        toggle a lesson active/inactive
  token                 sign a development token for -role, API_USER_ID and -grade

flags:
`)
	flag.PrintDefaults()
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger, opts options, args []string, out io.Writer) error {
	role := models.UserRole(strings.ToUpper(opts.role))
	actor, ok := lifecycle.ActorFor(role)
	if !ok {
		return fmt.Errorf("unknown role %q", opts.role)
	}
	status, err := parseStatus(opts.status)
	if err != nil {
		return err
	}

	metrics := service.NewMetricsService()
	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.Workbench.BaseURL,
		Token:   cfg.Workbench.Token,
		UserID:  cfg.Workbench.UserID,
		Timeout: cfg.Workbench.Timeout,
	}, apiclient.WithObserver(metrics), apiclient.WithLogger(logr))

	tree := treecache.New(client,
		treecache.WithConcurrency(cfg.Workbench.DetailConcurrency),
		treecache.WithLogger(logr))
	store := workflow.NewStore(tree, listview.NewFilter(status, cfg.Workbench.PageSize))
	defer store.Close()

	controllerOpts := []workflow.Option{
		workflow.WithLogger(logr),
		workflow.WithRedirectDelay(cfg.Workbench.RedirectDelay),
		workflow.WithUserID(cfg.Workbench.UserID),
	}
	if actor == lifecycle.ActorTeacher {
		controllerOpts = append(controllerOpts, workflow.TeacherScoped())
	}
	ctrl := workflow.NewController(client, store, actor, controllerOpts...)

	profile := models.Profile{UserID: cfg.Workbench.UserID, Role: role, GradeLabel: opts.gradeLabel}
	if opts.gradeID > 0 {
		profile.GradeID = &opts.gradeID
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "token":
		if cfg.Env == config.EnvProduction {
			return errors.New("token issuing is disabled in production")
		}
		auth := service.NewAuthService(service.AuthConfig{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
			Expiry: cfg.JWT.Expiration,
		})
		token, err := auth.IssueToken(profile)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)
		return nil

	case "plans":
		if err := prepareList(ctx, ctrl, profile, opts); err != nil {
			return err
		}
		printPlans(out, ctrl.View())
		return nil

	case "show":
		id, err := idArg(rest, 0)
		if err != nil {
			return err
		}
		plan, err := ctrl.LoadPlan(ctx, id)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)

	case "submit", "approve", "reject", "draft", "delete":
		id, err := idArg(rest, 0)
		if err != nil {
			return err
		}
		redirect, err := transition(ctx, ctrl, cmd, id, opts.reason)
		if err != nil {
			return err
		}
		printNotice(out, ctrl.View().Notice)
		if !opts.follow {
			fmt.Fprintf(out, "next list: %s\n", redirect.Status)
			return nil
		}
		if err := prepareList(ctx, ctrl, profile, opts); err != nil {
			return err
		}
		if err := ctrl.FollowRedirect(ctx, redirect); err != nil {
			return err
		}
		printPlans(out, ctrl.View())
		return nil

	case "modules":
		if _, err := ctrl.ResolveGrade(ctx, profile); err != nil {
			return err
		}
		ctrl.SetSemester(opts.semester)
		printModules(out, ctrl.View())
		return nil

	case "lessons":
		moduleID, err := idArg(rest, 0)
		if err != nil {
			return err
		}
		lessons, err := tree.LoadLessons(ctx, moduleID)
		if err != nil {
			return err
		}
		printLessons(out, lessons)
		return nil

	case "module-delete":
		moduleID, err := idArg(rest, 0)
		if err != nil {
			return err
		}
		if err := ctrl.DeleteModule(ctx, moduleID); err != nil {
			return err
		}
		printNotice(out, ctrl.View().Notice)
		return nil

	case "lesson-toggle":
		moduleID, err := idArg(rest, 0)
		if err != nil {
			return err
		}
		lessonID, err := idArg(rest, 1)
		if err != nil {
			return err
		}
		module, err := client.Module(ctx, moduleID)
		if err != nil {
			return err
		}
		tree.UpsertModule(*module)
		if _, err := tree.LoadLessons(ctx, moduleID); err != nil {
			return err
		}
		if _, err := ctrl.ToggleLessonActive(ctx, moduleID, lessonID); err != nil {
			return err
		}
		lessons, _ := tree.Lessons(moduleID)
		printLessons(out, lessons)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func prepareList(ctx context.Context, ctrl *workflow.Controller, profile models.Profile, opts options) error {
	gradeless := false
	gradeID, err := ctrl.ResolveGrade(ctx, profile)
	switch {
	case err == nil:
	case gradeID != 0:
		// The grade is known; a failed tree or list load stays on the view notice.
	case profile.Role == models.RoleTeacher || !errors.Is(err, workflow.ErrGradeUnresolved):
		return err
	default:
		gradeless = true
	}
	ctrl.SetSemester(opts.semester)
	if err := ctrl.SetModule(ctx, opts.moduleID); err != nil {
		return err
	}
	if err := ctrl.SetSearch(ctx, opts.search); err != nil {
		return err
	}
	if err := ctrl.SetPage(ctx, opts.page); err != nil {
		return err
	}
	if gradeless {
		return ctrl.Refresh(ctx)
	}
	return nil
}

func transition(ctx context.Context, ctrl *workflow.Controller, cmd string, id int64, reason string) (workflow.Redirect, error) {
	switch cmd {
	case "submit":
		return ctrl.Submit(ctx, id)
	case "approve":
		return ctrl.Approve(ctx, id)
	case "reject":
		return ctrl.Reject(ctx, id, reason)
	case "draft":
		return ctrl.ReturnToDraft(ctx, id)
	default:
		return ctrl.DeletePlan(ctx, id)
	}
}

func parseStatus(raw string) (models.PlanStatus, error) {
	for _, st := range []models.PlanStatus{
		models.PlanStatusDraft,
		models.PlanStatusPending,
		models.PlanStatusApproved,
		models.PlanStatusRejected,
	} {
		if strings.EqualFold(raw, st.String()) || raw == strconv.Itoa(int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", raw)
}

func idArg(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, errors.New("missing id argument")
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[i])
	}
	return id, nil
}

func printPlans(out io.Writer, v listview.View) {
	printNotice(out, v.Notice)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tMODULE\tSTATUS\tACTIONS")
	for _, row := range v.Items {
		actions := make([]string, 0, len(row.Actions))
		for _, a := range row.Actions {
			actions = append(actions, string(a))
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", row.Plan.ID, row.Plan.Title, row.Plan.ModuleID, row.Plan.Status, strings.Join(actions, ","))
	}
	_ = w.Flush()
	fmt.Fprintf(out, "page %d/%d, %d records\n", v.CurrentPage, v.TotalPages, v.TotalRecords)
}

func printModules(out io.Writer, v listview.View) {
	printNotice(out, v.Notice)
	for _, tab := range v.SemesterTabs {
		marker := " "
		if tab.Active {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%d)\n", marker, tab.Label, tab.Count)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEMESTER")
	for _, m := range v.ModuleOptions {
		fmt.Fprintf(w, "%d\t%s\t%d\n", m.ID, m.Name, m.Semester)
	}
	_ = w.Flush()
}

func printLessons(out io.Writer, lessons []models.Lesson) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPERIODS\tACTIVE")
	for _, l := range lessons {
		fmt.Fprintf(w, "%d\t%s\t%d\t%t\n", l.ID, l.Name, l.TotalPeriods, l.IsActive)
	}
	_ = w.Flush()
}

func printNotice(out io.Writer, n *listview.Notice) {
	if n != nil {
		fmt.Fprintf(out, "[%s] %s\n", n.Severity, n.Message)
	}
}
