package vecs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func compileScript(t testing.TB, source string) *Script {
	t.Helper()
	return compileScriptWithConfig(t, Config{}, source)
}

func compileScriptWithConfig(t testing.TB, cfg Config, source string) *Script {
	t.Helper()
	engine := MustNewEngine(cfg)
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return script
}

func callFunc(t *testing.T, script *Script, name string, args []Value) Value {
	t.Helper()
	result, err := script.Call(context.Background(), name, args, CallOptions{})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return result
}

func runScript(t *testing.T, source string) *Result {
	t.Helper()
	result, err := compileScript(t, source).Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func expectNumbers(t *testing.T, got Value, want ...float64) {
	t.Helper()
	if got.Kind() != KindNumeric {
		t.Fatalf("expected numeric result, got %s %s", got.Kind(), got.String())
	}
	if !got.Equal(NewNumeric(want...)) {
		t.Fatalf("expected %v, got %s", want, got.String())
	}
}

func runtimeError(t *testing.T, err error) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rtErr
}

func TestDefaultMayReferToEarlierParameter(t *testing.T) {
	script := compileScript(t, `f <- function(x, y = x * 2) x + y`)
	expectNumbers(t, callFunc(t, script, "f", []Value{NewNumeric(3)}), 9)
	expectNumbers(t, callFunc(t, script, "f", []Value{NewNumeric(3), NewNumeric(1)}), 4)
}

func TestClosureCallsBindArgumentsByPrefix(t *testing.T) {
	script := compileScript(t, `f <- function(longname_x, y) longname_x - y`)
	val, err := script.Call(context.Background(), "f", nil, CallOptions{
		Keywords: map[string]Value{"y": NewNumeric(7), "l": NewNumeric(6)},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	expectNumbers(t, val, -1)
}

func TestBindingFailureSurfacesAsRuntimeError(t *testing.T) {
	script := compileScript(t, `f <- function(xa, xb) 1
f(x = 1)`)
	_, err := script.Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Call != "f" {
		t.Fatalf("expected error attributed to f, got %q", rtErr.Call)
	}
	var failure *BindingFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected wrapped BindingFailure, got %v", err)
	}
	if failure.Kind != AmbiguousLabel || strings.Join(failure.Candidates, ",") != "xa,xb" {
		t.Fatalf("unexpected failure %+v", failure)
	}
	if !errors.Is(err, ErrBinding) {
		t.Fatalf("expected errors.Is(err, ErrBinding)")
	}
}

func TestBuiltinsBindThroughSameMatcher(t *testing.T) {
	script := compileScript(t, `runif(3, m = 5)`)
	_, err := script.Run(context.Background(), RunOptions{})
	var failure *BindingFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected binding failure, got %v", err)
	}
	if failure.Kind != AmbiguousLabel || strings.Join(failure.Candidates, ",") != "min,max" {
		t.Fatalf("unexpected failure %+v", failure)
	}

	result := runScript(t, `round(3.14159, dig = 2)`)
	expectNumbers(t, result.Value, 3.14)
}

func TestClosuresCaptureDefinitionEnvironment(t *testing.T) {
	result := runScript(t, `x <- "global"
show <- function() x
caller <- function() {
  x <- "local"
  show()
}
caller()`)
	if got := result.Value.Strings(); len(got) != 1 || got[0] != "global" {
		t.Fatalf("expected lookup through the definition frame, got %s", result.Value.String())
	}
}

func TestSuperAssignmentUpdatesEnclosingFrame(t *testing.T) {
	result := runScript(t, `make_counter <- function() {
  count <- 0
  function() {
    count <<- count + 1
    count
  }
}
counter <- make_counter()
counter()
counter()
result <- counter()
result`)
	expectNumbers(t, result.Value, 3)
}

func TestSuperAssignmentDefinesGlobalWhenUnbound(t *testing.T) {
	result := runScript(t, `touch <- function() {
  hits <<- 41
  invisible(NULL)
}
touch()
hits + 1`)
	expectNumbers(t, result.Value, 42)
}

func TestEarlyReturnFromLoop(t *testing.T) {
	script := compileScript(t, `search <- function(target, tries = 1000) {
  for (i in seq_len(tries)) {
    if (i == target) return(i * 10)
  }
  -1
}`)
	expectNumbers(t, callFunc(t, script, "search", []Value{NewNumeric(7)}), 70)
	expectNumbers(t, callFunc(t, script, "search", []Value{NewNumeric(7), NewNumeric(3)}), -1)
}

func TestRandomSearchReturnsFirstHit(t *testing.T) {
	seed := uint64(7)
	script := compileScriptWithConfig(t, Config{Seed: &seed}, `find <- function(threshold) {
  repeat {
    x <- runif(1)
    if (x > threshold) return(x)
  }
}
find(0.9)`)
	result, err := script.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v := result.Value.Numerics(); len(v) != 1 || v[0] <= 0.9 || v[0] >= 1 {
		t.Fatalf("expected a draw above 0.9, got %s", result.Value.String())
	}
}

func TestStopIsFatalAndWarningIsAdvisory(t *testing.T) {
	script := compileScript(t, `safe_mean <- function(x) {
  if (length(x) == 0) stop("need at least one value")
  if (length(x) == 1) warning("only one value; mean is the value itself")
  mean(x)
}`)

	_, err := script.Call(context.Background(), "safe_mean", []Value{NewNull()}, CallOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Type != runtimeErrorTypeBase || rtErr.Call != "safe_mean" || rtErr.Message != "need at least one value" {
		t.Fatalf("unexpected error %+v", rtErr)
	}
	if !strings.HasPrefix(err.Error(), "Error in safe_mean(): need at least one value") {
		t.Fatalf("unexpected error text %q", err.Error())
	}

	var warnings []Warning
	val, err := script.Call(context.Background(), "safe_mean", []Value{NewNumeric(5)}, CallOptions{
		OnWarning: func(w Warning) { warnings = append(warnings, w) },
	})
	if err != nil {
		t.Fatalf("warning must not fail the call: %v", err)
	}
	expectNumbers(t, val, 5)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if warnings[0].Call != "safe_mean" || warnings[0].String() != "In safe_mean(): only one value; mean is the value itself" {
		t.Fatalf("unexpected warning %+v", warnings[0])
	}

	expectNumbers(t, callFunc(t, script, "safe_mean", []Value{NewNumeric(1, 2, 3)}), 2)
}

func TestStopWithoutCall(t *testing.T) {
	_, err := compileScript(t, `f <- function() stop("bad ", "input", call. = FALSE)
f()`).Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Call != "" || rtErr.Message != "bad input" {
		t.Fatalf("unexpected error %+v", rtErr)
	}
}

func TestBuiltinErrorListsEachFrameOnce(t *testing.T) {
	_, err := compileScript(t, `f <- function() stop("empty")
f()`).Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	want := []StackFrame{
		{Function: "stop", Pos: Position{Line: 1, Column: 17}},
		{Function: "f", Pos: Position{Line: 2, Column: 1}},
	}
	if diff := cmp.Diff(want, rtErr.Frames); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(err.Error(), "at stop (1:17)"); got != 1 {
		t.Fatalf("expected the stop frame once, got %d in %q", got, err.Error())
	}
}

func TestSeqLenRejectsNegativeLength(t *testing.T) {
	_, err := compileScript(t, `seq_len(-1)`).Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Message != "argument of length.out must be coercible to non-negative integer" {
		t.Fatalf("unexpected message %q", rtErr.Message)
	}
	if len(rtErr.Frames) != 1 || rtErr.Frames[0].Function != "seq_len" {
		t.Fatalf("unexpected frames %+v", rtErr.Frames)
	}
}

func TestRecyclingWarning(t *testing.T) {
	result := runScript(t, `1:3 + 1:2`)
	expectNumbers(t, result.Value, 2, 4, 4)
	if len(result.Warnings) != 1 || result.Warnings[0].Message != "longer object length is not a multiple of shorter object length" {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}

	result = runScript(t, `c(1, 2, 3, 4) * c(10, 100)`)
	expectNumbers(t, result.Value, 10, 200, 30, 400)
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestStepQuotaExceeded(t *testing.T) {
	script := compileScriptWithConfig(t, Config{StepQuota: 500}, `repeat { x <- 1 }`)
	_, err := script.Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Type != runtimeErrorTypeQuota || !strings.Contains(rtErr.Message, "step quota exceeded") {
		t.Fatalf("unexpected error %+v", rtErr)
	}
}

func TestRecursionLimit(t *testing.T) {
	script := compileScriptWithConfig(t, Config{RecursionLimit: 20}, `down <- function(n) down(n + 1)
down(1)`)
	_, err := script.Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if rtErr.Type != runtimeErrorTypeQuota || !strings.Contains(rtErr.Message, "recursion depth exceeded") {
		t.Fatalf("unexpected error %+v", rtErr)
	}
	if !strings.Contains(err.Error(), "frames omitted") {
		t.Fatalf("expected truncated stack trace, got %q", err.Error())
	}
}

func TestContextCancellationStopsExecution(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := compileScript(t, `repeat { x <- 1 }`).Run(ctx, RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPartialMatchWarning(t *testing.T) {
	script := compileScriptWithConfig(t, Config{WarnPartialMatch: true}, `f <- function(longname, y) longname - y
f(y = 1, long = 10)`)
	result, err := script.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectNumbers(t, result.Value, 9)
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if got := result.Warnings[0].String(); got != "In f(): partial argument match of 'long' to 'longname'" {
		t.Fatalf("unexpected warning %q", got)
	}
}

func TestDotsForwarding(t *testing.T) {
	result := runScript(t, `wrap <- function(...) paste(..., sep = "-")
wrap("a", "b", "c")`)
	if got := result.Value.Strings(); len(got) != 1 || got[0] != "a-b-c" {
		t.Fatalf("unexpected result %s", result.Value.String())
	}

	result = runScript(t, `count_args <- function(...) length(list(...))
count_args(1, x = 2, 3)`)
	expectNumbers(t, result.Value, 3)

	result = runScript(t, `c(1, a = 2, 3)`)
	expectNumbers(t, result.Value, 1, 2, 3)
}

func TestDotsOutsideFunctionIsError(t *testing.T) {
	_, err := compileScript(t, `c(...)`).Run(context.Background(), RunOptions{})
	rtErr := runtimeError(t, err)
	if !strings.Contains(rtErr.Message, "'...' used in an incorrect context") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSapplyForwardsExtraArguments(t *testing.T) {
	result := runScript(t, `sapply(1:4, function(x, p = 1) x ^ p, p = 2)`)
	expectNumbers(t, result.Value, 1, 4, 9, 16)

	result = runScript(t, `lapply(c(1, 2), function(x) c(x, x))`)
	if result.Value.Kind() != KindList || result.Value.Len() != 2 {
		t.Fatalf("expected list of two, got %s", result.Value.String())
	}
}

func TestLoopControl(t *testing.T) {
	result := runScript(t, `total <- 0
for (i in 1:10) {
  if (i %% 2 == 0) next
  if (i > 7) break
  total <- total + i
}
total`)
	expectNumbers(t, result.Value, 16)

	result = runScript(t, `n <- 0
while (n < 5) n <- n + 2
n`)
	expectNumbers(t, result.Value, 6)
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, err := compileScript(t, `break`).Run(context.Background(), RunOptions{})
	runtimeError(t, err)

	_, err = compileScript(t, `f <- function() break
for (i in 1:3) f()`).Run(context.Background(), RunOptions{})
	runtimeError(t, err)
}

func TestIfElse(t *testing.T) {
	script := compileScript(t, `sign_of <- function(x) {
  if (x > 0) {
    "positive"
  } else if (x < 0) {
    "negative"
  }
  else "zero"
}`)
	cases := map[float64]string{3: "positive", -2: "negative", 0: "zero"}
	for in, want := range cases {
		got := callFunc(t, script, "sign_of", []Value{NewNumeric(in)})
		if got.Strings()[0] != want {
			t.Fatalf("sign_of(%v) = %s, want %s", in, got.String(), want)
		}
	}

	_, err := compileScript(t, `if (c(TRUE, FALSE)) 1`).Run(context.Background(), RunOptions{})
	if rtErr := runtimeError(t, err); !strings.Contains(rtErr.Message, "the condition has length > 1") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestIndexing(t *testing.T) {
	result := runScript(t, `x <- c(10, 20, 30)
x[2] <- 99
x[-1]`)
	expectNumbers(t, result.Value, 99, 30)

	result = runScript(t, `x <- c(1, 2, 3, 4)
x[x > 2]`)
	expectNumbers(t, result.Value, 3, 4)

	result = runScript(t, `x <- numeric_list <- list(1, "a")
x[[2]]`)
	if got := result.Value.Strings(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected element %s", result.Value.String())
	}

	result = runScript(t, `x <- c(1)
x[[4]] <- 7
x`)
	expectNumbers(t, result.Value, 1, 0, 0, 7)

	_, err := compileScript(t, `c(1, 2)[5]`).Run(context.Background(), RunOptions{})
	if rtErr := runtimeError(t, err); rtErr.Message != "subscript out of bounds" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAutoPrintShowsVisibleValues(t *testing.T) {
	var out bytes.Buffer
	script := compileScriptWithConfig(t, Config{Stdout: &out}, `x <- 5
x
print("hi")
invisible(3)
c(TRUE, FALSE)`)
	if _, err := script.Run(context.Background(), RunOptions{AutoPrint: true}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "[1] 5\n[1] \"hi\"\n[1]  TRUE FALSE\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q, want %q", out.String(), want)
	}
}

func TestCatAndMessageWriteToStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	script := compileScriptWithConfig(t, Config{Stdout: &stdout, Stderr: &stderr}, `cat("a", 1, TRUE, "\n", sep = "")
message("note: ", 3)`)
	if _, err := script.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.String() != "a1TRUE\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if stderr.String() != "note: 3\n" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestSeededRandomIsReproducible(t *testing.T) {
	result := runScript(t, `set.seed(42); a <- runif(3); set.seed(42); b <- runif(3)
identical(a, b)`)
	if got := result.Value.Logicals(); len(got) != 1 || !got[0] {
		t.Fatalf("expected identical draws, got %s", result.Value.String())
	}

	seed := uint64(3)
	script := compileScriptWithConfig(t, Config{Seed: &seed}, `rnorm(4, mean = 10)`)
	first, err := script.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := script.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !first.Value.Equal(second.Value) {
		t.Fatalf("expected equal draws for a fixed seed: %s vs %s", first.Value.String(), second.Value.String())
	}
}

func TestMathBuiltins(t *testing.T) {
	cases := []struct {
		src  string
		want []float64
	}{
		{`sum(1:4, 10)`, []float64{20}},
		{`mean(c(2, 4, 9))`, []float64{5}},
		{`max(3, c(9, 1))`, []float64{9}},
		{`min(c(3, -2), 0)`, []float64{-2}},
		{`sqrt(c(4, 9))`, []float64{2, 3}},
		{`abs(-3)`, []float64{3}},
		{`log(8, base = 2)`, []float64{3}},
		{`round(2.5)`, []float64{2}},
		{`seq(2, 10, by = 4)`, []float64{2, 6, 10}},
		{`seq(5, 3)`, []float64{5, 4, 3}},
		{`seq_along(c("a", "b"))`, []float64{1, 2}},
		{`rep(c(1, 2), times = 2)`, []float64{1, 2, 1, 2}},
		{`5 %/% 2`, []float64{2}},
		{`-5 %% 3`, []float64{1}},
		{`length(NULL)`, []float64{0}},
		{`nchar(c("go", "vector"))`, []float64{2, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			result := runScript(t, tc.src)
			expectNumbers(t, result.Value, tc.want...)
		})
	}
}

func TestMeanOfCharacterWarns(t *testing.T) {
	result := runScript(t, `mean("a")`)
	if len(result.Warnings) != 1 || result.Warnings[0].Call != "mean" {
		t.Fatalf("unexpected warnings %v", result.Warnings)
	}
}

func TestPasteVariants(t *testing.T) {
	cases := map[string][]string{
		`paste("a", 1:2)`:                     {"a 1", "a 2"},
		`paste0("x", 1:3, collapse = "+")`:    {"x1+x2+x3"},
		`paste(c("a", "b"), collapse = "")`:   {"ab"},
		`toupper(paste("go", "r", sep = ""))`: {"GOR"},
	}
	for src, want := range cases {
		result := runScript(t, src)
		if !result.Value.Equal(NewCharacter(want...)) {
			t.Fatalf("%s = %s, want %v", src, result.Value.String(), want)
		}
	}
}

func TestFormalArgsAndPredicates(t *testing.T) {
	result := runScript(t, `formalArgs(function(alpha, beta = 2, ...) NULL)`)
	if !result.Value.Equal(NewCharacter("alpha", "beta", "...")) {
		t.Fatalf("unexpected formals %s", result.Value.String())
	}

	result = runScript(t, `formalArgs(paste)`)
	if !result.Value.Equal(NewCharacter("...", "sep", "collapse")) {
		t.Fatalf("unexpected formals %s", result.Value.String())
	}

	result = runScript(t, `c(is.null(NULL), is.numeric(1), is.function(sum), exists("sum"), exists("nope"))`)
	if !result.Value.Equal(NewLogical(true, true, true, true, false)) {
		t.Fatalf("unexpected predicates %s", result.Value.String())
	}
}

func TestCallWithGlobalsAndKeywords(t *testing.T) {
	script := compileScript(t, `scale <- function(alpha, beta = 2) alpha * beta * factor`)
	val, err := script.Call(context.Background(), "scale", []Value{NewNumeric(3)}, CallOptions{
		Globals:  map[string]Value{"factor": NewNumeric(10)},
		Keywords: map[string]Value{"be": NewNumeric(5)},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	expectNumbers(t, val, 150)

	if _, err := script.Call(context.Background(), "missing", nil, CallOptions{}); err == nil || !strings.Contains(err.Error(), "function missing not found") {
		t.Fatalf("expected missing function error, got %v", err)
	}
}

func TestUndefinedNames(t *testing.T) {
	_, err := compileScript(t, `nope + 1`).Run(context.Background(), RunOptions{})
	if rtErr := runtimeError(t, err); rtErr.Message != "object 'nope' not found" {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = compileScript(t, `nope(1)`).Run(context.Background(), RunOptions{})
	if rtErr := runtimeError(t, err); rtErr.Message != `could not find function "nope"` {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFunctionLookupSkipsNonFunctions(t *testing.T) {
	result := runScript(t, `sum <- 3
sum(sum, 4)`)
	expectNumbers(t, result.Value, 7)
}

func TestScriptFunctions(t *testing.T) {
	script := compileScript(t, `b <- function(x) x
a <- function(y, z = 1) y
value <- 3`)
	fns := script.Functions()
	if len(fns) != 2 || fns[0].Name != "a" || fns[1].Name != "b" {
		t.Fatalf("unexpected functions %+v", fns)
	}
	if strings.Join(fns[0].Params, ",") != "y,z" {
		t.Fatalf("unexpected params %v", fns[0].Params)
	}
}
