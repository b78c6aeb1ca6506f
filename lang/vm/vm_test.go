package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles and executes source against a fresh VM, returning its
// standard output.
func run(t *testing.T, source string) (string, error) {
	t.Helper()
	heap := gc.New()
	v := vm.New(heap)
	v.SetFilename("test.fl")
	var out bytes.Buffer
	v.Stdout = &out
	err := v.Interpret([]byte(source))
	return out.String(), err
}

// TestFibonacciClosures covers scenario A: recursive fibonacci plus a
// counter closure capturing its own local.
func TestFibonacciClosures(t *testing.T) {
	src := `
fn fib(n) {
	if (n < 2) { return n; }
	return fib(n - 1) + fib(n - 2);
}

fn makeCounter() {
	var count = 0;
	fn counter() {
		count = count + 1;
		return count;
	}
	return counter;
}

print(fib(10));
var c = makeCounter();
print(c());
print(c());
print(c());
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "55\n1\n2\n3\n", out)
}

// TestLexicalCaptureIndependence covers scenario B: two counters created by
// the same factory capture independent upvalues.
func TestLexicalCaptureIndependence(t *testing.T) {
	src := `
fn makeCounter() {
	var count = 0;
	fn counter() {
		count = count + 1;
		return count;
	}
	return counter;
}

var a = makeCounter();
var b = makeCounter();
print(a());
print(a());
print(b());
print(a());
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n1\n3\n", out)
}

// TestClassInheritanceOverride covers scenario C: method override, super
// calls, and field access through "this".
func TestClassInheritanceOverride(t *testing.T) {
	src := `
class Animal {
	init(name) {
		this.name = name;
	}

	speak() {
		return this.name + " makes a sound.";
	}
}

class Dog < Animal {
	speak() {
		return super.speak() + " Woof!";
	}
}

var d = Dog("Rex");
print(d.speak());
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "Rex makes a sound. Woof!\n", out)
}

// TestListSubscriptWraparound covers scenario D: Python-style negative
// indices for reads and writes (out-of-range errors are checked by
// TestListSubscriptOutOfRange).
func TestListSubscriptWraparound(t *testing.T) {
	src := `
var xs = [10, 20, 30];
print(xs[-1]);
print(xs[-3]);
xs[-1] = 99;
print(xs[2]);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "30\n10\n99\n", out)
}

func TestListSubscriptOutOfRange(t *testing.T) {
	_, err := run(t, `var xs = [1, 2]; print(xs[5]);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

// TestMapDefaultingAndSwitch covers scenario E: missing map keys read as
// null, and a switch dispatches on structural equality.
func TestMapDefaultingAndSwitch(t *testing.T) {
	src := `
var m = {"a": 1, "b": 2};
print(m["c"]);

fn classify(n) {
	switch n {
		when 0 -> { return "zero"; }
		when 1 -> { return "one"; }
		else -> { return "many"; }
	}
}

print(classify(0));
print(classify(1));
print(classify(42));
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "null\nzero\none\nmany\n", out)
}

// TestRuntimeErrorStackTrace covers scenario F: a division-by-zero fault
// unwinds through nested calls and reports an innermost-first trace.
func TestRuntimeErrorStackTrace(t *testing.T) {
	src := `
fn divide(a, b) {
	return a / b;
}

fn compute() {
	return divide(10, 0);
}

compute();
`
	_, err := run(t, src)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "RuntimeError: Divisor must be a non-zero number.")
	assert.Contains(t, msg, "Stack trace (last call first):")
	assert.True(t, strings.Contains(msg, "divide()"))
	assert.True(t, strings.Contains(msg, "compute()"))
}

func TestStringConcatInterning(t *testing.T) {
	out, err := run(t, `var a = "foo"; var b = "bar"; print(a + b); print(a + b == "foobar");`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\ntrue\n", out)
}

func TestModTruncatesOperandsBeforeComputing(t *testing.T) {
	// trunc(5.5) = 5, trunc(2.9) = 2 -> 5 % 2 = 1, not math.Mod(5.5, 2.9).
	out, err := run(t, `print(5.5 % 2.9);`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestModDivisorTruncatingToZeroIsAnError(t *testing.T) {
	out, err := run(t, `print(5 % 0.5);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Divisor must be a non-zero number.")
	assert.Empty(t, out)
}

func TestWhileAndBreakNext(t *testing.T) {
	src := `
var i = 0;
var sum = 0;
while (i < 10) {
	i = i + 1;
	if (i == 5) { next; }
	if (i == 9) { break; }
	sum = sum + i;
}
print(sum);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "31\n", out)
}

func TestForLoop(t *testing.T) {
	src := `
var total = 0;
for (var i = 0, i < 5, i += 1) {
	total += i;
}
print(total);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestTernaryAndLogical(t *testing.T) {
	src := `
var a = true and false;
var b = false or 7;
print(a);
print(b);
print(1 < 2 ? "yes" : "no");
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "false\n7\nyes\n", out)
}

func TestNativeFns(t *testing.T) {
	src := `
print(len("hello"));
print(len([1, 2, 3]));
print(type(1));
print(type("x"));
print(type(null));
print(str(12));
print(num("3.5") + 0.5);
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "5\n3\nnumber\nstring\nnull\n12\n4\n", out)
}

func TestCompileError(t *testing.T) {
	_, err := run(t, `var x = ;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CompilerError")
}
