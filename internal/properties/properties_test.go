package properties

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeEnv(vars map[string]string) *EnvSource {
	return &EnvSource{lookup: func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}}
}

func TestResolver_Order(t *testing.T) {
	t.Parallel()

	build := NewMapSource("build", map[string]string{"java7Home": "/build/jdk7"})
	env := fakeEnv(map[string]string{"java7Home": "/env/jdk7", "testJavaHome": "/env/test"})
	r := NewResolver(build, env)

	v, ok := r.Resolve("java7Home")
	require.True(t, ok)
	require.Equal(t, Value{Key: "java7Home", Value: "/build/jdk7", Source: "build"}, v)

	v, ok = r.Resolve("testJavaHome")
	require.True(t, ok)
	require.Equal(t, "/env/test", v.Value)
	require.Equal(t, "environment", v.Source)

	_, ok = r.Resolve("java6Home")
	require.False(t, ok)
}

func TestResolver_BlankValuesAreAbsent(t *testing.T) {
	t.Parallel()

	build := NewMapSource("build", map[string]string{"java7Home": "  "})
	env := fakeEnv(map[string]string{"java7Home": "/env/jdk7"})

	v, ok := NewResolver(build, env).Resolve("java7Home")
	require.True(t, ok)
	require.Equal(t, "/env/jdk7", v.Value)

	_, ok = NewResolver(build).Resolve("java7Home")
	require.False(t, ok)

	_, ok = NewResolver(build, env).Resolve(" ")
	require.False(t, ok)
}

func TestResolver_NilSourcesIgnored(t *testing.T) {
	t.Parallel()

	r := NewResolver(nil, NewMapSource("build", map[string]string{"a": "b"}))
	v, ok := r.Resolve("a")
	require.True(t, ok)
	require.Equal(t, "b", v.Value)
}

func TestMapSource_CopiesInput(t *testing.T) {
	t.Parallel()

	in := map[string]string{"a": "1"}
	s := NewMapSource("build", in)
	in["a"] = "2"

	v, ok := s.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestEnvSource_UpperSnakeFallback(t *testing.T) {
	t.Parallel()

	env := fakeEnv(map[string]string{"JAVA7_HOME": "/opt/jdk7"})

	v, ok := env.Lookup("java7Home")
	require.True(t, ok)
	require.Equal(t, "/opt/jdk7", v)

	_, ok = env.Lookup("testJavaHome")
	require.False(t, ok)
}

func TestEnvVarName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"java7Home":    "JAVA7_HOME",
		"testJavaHome": "TEST_JAVA_HOME",
		"JAVA_HOME":    "JAVA_HOME",
		"java.home":    "JAVA_HOME",
		"jdk-home":     "JDK_HOME",
	}

	for in, expected := range tests {
		require.Equal(t, expected, EnvVarName(in), in)
	}
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	got, err := ParseAssignments([]string{"java7Home=/opt/jdk7", "empty=", "eq=a=b"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"java7Home": "/opt/jdk7", "empty": "", "eq": "a=b"}, got)

	_, err = ParseAssignments([]string{"novalue"})
	require.Error(t, err)

	_, err = ParseAssignments([]string{"=x"})
	require.Error(t, err)
}
